package port

// Fields - произвольные структурированные поля лога.
type Fields map[string]interface{}

// LoggerPort - абстракция логгера для ядра и адаптеров.
// Реализации: slog/tint (stdout), fluent-bit, мультилоггер.
type LoggerPort interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	WithFields(fields Fields) LoggerPort
}
