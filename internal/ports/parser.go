package ports

// TableParser reads a serialized locale table into a flat key -> text map.
type TableParser interface {
	Format() string
	Parse(data []byte) (map[string]string, error)
}
