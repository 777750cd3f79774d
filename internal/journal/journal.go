package journal

import (
	"context"
	"log/slog"

	"github.com/shaiso/azkaban-submitter/internal/domain"
)

// Sink — приёмник событий журнала.
type Sink interface {
	Name() string
	Write(ctx context.Context, ev *domain.Event) error
}

// Journal рассылает события операций по приёмникам.
//
// Ошибка приёмника не прерывает операцию: она логируется на уровне Warn,
// остальные приёмники получают событие.
type Journal struct {
	sinks  []Sink
	logger *slog.Logger
}

// New создаёт журнал. Nil-приёмники пропускаются.
func New(logger *slog.Logger, sinks ...Sink) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	j := &Journal{logger: logger}
	for _, s := range sinks {
		if s != nil {
			j.sinks = append(j.sinks, s)
		}
	}
	return j
}

// Add подключает приёмник.
func (j *Journal) Add(s Sink) {
	if s != nil {
		j.sinks = append(j.sinks, s)
	}
}

// Sinks возвращает имена подключённых приёмников.
func (j *Journal) Sinks() []string {
	names := make([]string, 0, len(j.sinks))
	for _, s := range j.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Record записывает событие во все приёмники и возвращает число успешных записей.
// Безопасен для nil-журнала.
func (j *Journal) Record(ctx context.Context, ev *domain.Event) int {
	if j == nil || ev == nil {
		return 0
	}

	written := 0
	for _, s := range j.sinks {
		if err := s.Write(ctx, ev); err != nil {
			j.logger.Warn("journal sink failed",
				"sink", s.Name(),
				"event", ev.Type,
				"error", err,
			)
			continue
		}
		written++
	}
	return written
}
