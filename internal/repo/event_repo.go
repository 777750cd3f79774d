package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/azkaban-submitter/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS operation_events (
		id          UUID PRIMARY KEY,
		type        TEXT        NOT NULL,
		endpoint    TEXT        NOT NULL,
		username    TEXT,
		project     TEXT,
		project_id  TEXT,
		flow        TEXT,
		exec_id     TEXT,
		outcome     TEXT        NOT NULL,
		detail      TEXT,
		error       TEXT,
		created_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS operation_events_project_idx
		ON operation_events (project, created_at DESC);
`

const selectColumns = `
	SELECT id, type, endpoint, username, project, project_id, flow, exec_id,
	       outcome, detail, error, created_at
	FROM operation_events
`

// EventRepo — журнал операций в PostgreSQL.
type EventRepo struct {
	pool *pgxpool.Pool
}

// NewEventRepo создаёт новый EventRepo.
func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// EnsureSchema создаёт таблицу журнала, если её нет.
func (r *EventRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Name — имя приёмника для журнала.
func (r *EventRepo) Name() string { return "postgres" }

// Write сохраняет событие. Реализует приёмник журнала.
func (r *EventRepo) Write(ctx context.Context, ev *domain.Event) error {
	return r.Insert(ctx, ev)
}

// Insert сохраняет событие.
func (r *EventRepo) Insert(ctx context.Context, ev *domain.Event) error {
	query := `
		INSERT INTO operation_events
			(id, type, endpoint, username, project, project_id, flow, exec_id,
			 outcome, detail, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		ev.ID,
		string(ev.Type),
		ev.Endpoint,
		nullString(ev.User),
		nullString(ev.Project),
		nullString(ev.ProjectID.String()),
		nullString(ev.Flow),
		nullString(ev.ExecID.String()),
		string(ev.Outcome),
		nullString(ev.Detail),
		nullString(ev.Error),
		ev.Time,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByID возвращает событие по ID.
func (r *EventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	ev, err := scanEvent(r.pool.QueryRow(ctx, selectColumns+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return ev, err
}

// EventFilter — параметры выборки событий.
type EventFilter struct {
	Project string
	Type    domain.EventType
	Limit   int
}

// ListRecent возвращает последние события, новые первыми.
func (r *EventRepo) ListRecent(ctx context.Context, filter EventFilter) ([]domain.Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := selectColumns + `
		WHERE ($1::text IS NULL OR project = $1)
		  AND ($2::text IS NULL OR type = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query,
		nullString(filter.Project),
		nullString(string(filter.Type)),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		ev                                             domain.Event
		evType, outcome                                string
		user, project, projectID, flow, execID, detail *string
		evErr                                          *string
	)
	err := row.Scan(
		&ev.ID,
		&evType,
		&ev.Endpoint,
		&user,
		&project,
		&projectID,
		&flow,
		&execID,
		&outcome,
		&detail,
		&evErr,
		&ev.Time,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}

	ev.Type = domain.EventType(evType)
	ev.Outcome = domain.Outcome(outcome)
	ev.User = deref(user)
	ev.Project = deref(project)
	ev.ProjectID = domain.ID(deref(projectID))
	ev.Flow = deref(flow)
	ev.ExecID = domain.ID(deref(execID))
	ev.Detail = deref(detail)
	ev.Error = deref(evErr)
	return &ev, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
