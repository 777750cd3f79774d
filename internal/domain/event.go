package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType — тип операции, попадающей в журнал.
type EventType string

// Типы событий. Используются как routing key при публикации.
const (
	EventSessionCreated     EventType = "session.created"
	EventFlowExecuted       EventType = "flow.executed"
	EventExecutionCancelled EventType = "execution.cancelled"
	EventFlowScheduled      EventType = "flow.scheduled"
	EventFlowUnscheduled    EventType = "flow.unscheduled"
	EventProjectCreated     EventType = "project.created"
	EventProjectUploaded    EventType = "project.uploaded"
	EventProjectRemoved     EventType = "project.removed"
)

// Event — запись об одной выполненной операции против Azkaban.
type Event struct {
	// ID — уникальный идентификатор события.
	ID uuid.UUID `json:"id"`

	// Type — тип операции.
	Type EventType `json:"type"`

	// Endpoint — адрес Azkaban, против которого выполнялась операция.
	Endpoint string `json:"endpoint"`

	// User — пользователь, от имени которого выполнялась операция (если известен).
	User string `json:"user,omitempty"`

	Project   string `json:"project,omitempty"`
	ProjectID ID     `json:"project_id,omitempty"`
	Flow      string `json:"flow,omitempty"`
	ExecID    ID     `json:"exec_id,omitempty"`

	// Outcome — итог операции.
	Outcome Outcome `json:"outcome"`

	// Detail — сообщение сервиса или краткое описание результата.
	Detail string `json:"detail,omitempty"`

	// Error — текст ошибки, если Outcome == failed.
	Error string `json:"error,omitempty"`

	// Time — время фиксации события (UTC).
	Time time.Time `json:"time"`
}

// NewEvent создаёт событие с новым ID и текущим временем.
// По умолчанию Outcome — succeeded.
func NewEvent(eventType EventType, endpoint string) *Event {
	return &Event{
		ID:       uuid.New(),
		Type:     eventType,
		Endpoint: endpoint,
		Outcome:  OutcomeSucceeded,
		Time:     time.Now().UTC(),
	}
}

// Fail помечает событие как ошибочное.
func (e *Event) Fail(msg string) *Event {
	e.Outcome = OutcomeFailed
	e.Error = msg
	return e
}

// Failed возвращает true, если операция завершилась ошибкой.
func (e *Event) Failed() bool {
	return e.Outcome == OutcomeFailed
}
