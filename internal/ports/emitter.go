package ports

// EventEmitter delivers named events to interested observers.
type EventEmitter interface {
	Emit(name string, payload any)
}
