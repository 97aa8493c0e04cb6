package ports

type ExportRow struct {
	Key    string
	Source string
	Text   string
}

type TableExporter interface {
	Format() string
	Ext() string
	Export(locale string, rows []ExportRow) ([]byte, error)
}
