package telemetry

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogOptions — параметры логгера CLI.
type LogOptions struct {
	// Level — DEBUG, INFO, WARN, ERROR. Пустое значение — из LOG_LEVEL.
	Level string

	// Format — "json" или "text". Пустое значение — из LOG_FORMAT.
	Format string

	// Output — куда писать логи. По умолчанию stderr: stdout занят данными.
	Output io.Writer
}

// ParseLevel разбирает уровень логирования.
// Возможные значения: DEBUG, INFO, WARN, ERROR
// По умолчанию: WARN
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SetupLogger инициализирует глобальный логгер.
//
// Формат вывода:
//   - "text" (по умолчанию) — человекочитаемый формат для терминала
//   - "json" — для сбора логов в CI/cron
func SetupLogger(opts LogOptions) *slog.Logger {
	level := opts.Level
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	format := opts.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: ParseLevel(level) == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// Discard возвращает логгер, который ничего не пишет. Используется в тестах.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithProject возвращает логгер с добавленным project.
func WithProject(logger *slog.Logger, project string) *slog.Logger {
	return logger.With("project", project)
}

// WithFlow возвращает логгер с добавленным flow.
func WithFlow(logger *slog.Logger, flow string) *slog.Logger {
	return logger.With("flow", flow)
}

// WithExecID возвращает логгер с добавленным exec_id.
func WithExecID(logger *slog.Logger, execID string) *slog.Logger {
	return logger.With("exec_id", execID)
}
