package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger - обёртка над slog.Logger.
type Logger struct {
	*slog.Logger
}

// NewLogger создаёт логгер: JSON в prod, текстовый в остальных окружениях.
func NewLogger(env string) *Logger {
	return newLogger(env, os.Stdout)
}

func newLogger(env string, w io.Writer) *Logger {
	var handler slog.Handler

	if env == "prod" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return &Logger{slog.New(handler)}
}

// Discard возвращает логгер, который ничего не пишет. Используется в тестах.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// With возвращает логгер с добавленными полями контекста.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}
