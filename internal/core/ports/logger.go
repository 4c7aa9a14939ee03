package ports

// LoggerPort is the logging surface the core depends on, kept free of
// any concrete logging backend.
type LoggerPort interface {
	Info(msg string)
	Error(msg string, err error)
	Warning(msg string)
	Close()
}
