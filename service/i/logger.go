package i

// Logger writes preformatted messages at a level.
type Logger interface {
	Debug(message string)
	Info(message string)
	Warn(message string)
	Error(message string)
}
