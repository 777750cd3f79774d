package journal

import (
	"context"
	"log/slog"

	"github.com/shaiso/azkaban-submitter/internal/domain"
)

// LogSink пишет события в slog.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink создаёт LogSink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Write(ctx context.Context, ev *domain.Event) error {
	level := slog.LevelInfo
	if ev.Failed() {
		level = slog.LevelWarn
	}

	attrs := []any{
		"event_id", ev.ID.String(),
		"outcome", ev.Outcome,
	}
	if ev.Project != "" {
		attrs = append(attrs, "project", ev.Project)
	}
	if ev.Flow != "" {
		attrs = append(attrs, "flow", ev.Flow)
	}
	if ev.ExecID != "" {
		attrs = append(attrs, "exec_id", ev.ExecID.String())
	}
	if ev.Detail != "" {
		attrs = append(attrs, "detail", ev.Detail)
	}
	if ev.Error != "" {
		attrs = append(attrs, "error", ev.Error)
	}

	s.logger.Log(ctx, level, string(ev.Type), attrs...)
	return nil
}
