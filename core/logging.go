package core

// Logger is any service that can log leveled messages.
// Extra args are attached to the message as context; a Principal arg
// identifies the caller the message relates to.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
