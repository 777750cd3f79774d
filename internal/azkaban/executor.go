package azkaban

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/shaiso/azkaban-submitter/internal/domain"
	"github.com/shaiso/azkaban-submitter/internal/telemetry"
)

// ExecutionManager — запуск, список и отмена executions через /executor.
type ExecutionManager struct {
	endpoint  Endpoint
	transport Transport
	logger    *slog.Logger
}

// NewExecutionManager создаёт ExecutionManager.
func NewExecutionManager(endpoint Endpoint, t Transport, logger *slog.Logger) *ExecutionManager {
	return &ExecutionManager{endpoint: endpoint, transport: t, logger: logger}
}

// Execute запускает flow (ajax=executeFlow).
//
// Ошибки возвращаются в поле error результата.
func (m *ExecutionManager) Execute(ctx context.Context, session domain.Session, project, flow string) *domain.ExecutionResult {
	if session.IsZero() {
		return domain.NewExecutionFailure(ErrNoSession.Error())
	}

	form := url.Values{
		paramSession: {string(session)},
		"ajax":       {"executeFlow"},
		"project":    {project},
		"flow":       {flow},
	}

	body, err := m.transport.PostForm(ctx, m.endpoint.URL(PathExecutor), form)
	if err != nil {
		return domain.NewExecutionFailure(err.Error())
	}

	var res domain.ExecutionResult
	if err := decode(body, &res); err != nil {
		return domain.NewExecutionFailure(err.Error())
	}

	telemetry.WithFlow(telemetry.WithProject(m.logger, project), flow).
		Debug("execute flow", "exec_id", res.ExecID.String(), "error", res.Error)
	return &res
}

// Running возвращает выполняющиеся executions flow (ajax=getRunning).
func (m *ExecutionManager) Running(ctx context.Context, session domain.Session, project, flow string) (*domain.RunningExecutionsResult, error) {
	if session.IsZero() {
		return nil, ErrNoSession
	}

	q := url.Values{
		paramSession: {string(session)},
		"ajax":       {"getRunning"},
		"project":    {project},
		"flow":       {flow},
	}

	body, err := m.transport.Get(ctx, m.endpoint.Query(PathExecutor, q))
	if err != nil {
		return nil, fmt.Errorf("get running: %w", err)
	}

	var res domain.RunningExecutionsResult
	if err := decode(body, &res); err != nil {
		return nil, fmt.Errorf("get running: %w", err)
	}
	return &res, nil
}

// Cancel отменяет execution (ajax=cancelFlow).
//
// Azkaban подтверждает отмену пустым телом. Пустая строка означает,
// что execution отменён; иначе возвращается MsgNotRunning.
func (m *ExecutionManager) Cancel(ctx context.Context, session domain.Session, execID domain.ID) (string, error) {
	if session.IsZero() {
		return "", ErrNoSession
	}

	q := url.Values{
		paramSession: {string(session)},
		"ajax":       {"cancelFlow"},
		"execid":     {execID.String()},
	}

	body, err := m.transport.Get(ctx, m.endpoint.Query(PathExecutor, q))
	if err != nil {
		return "", fmt.Errorf("cancel execution %s: %w", execID, err)
	}

	if domain.IsEmptyAck(body) {
		telemetry.WithExecID(m.logger, execID.String()).Debug("execution cancelled")
		return "", nil
	}
	telemetry.WithExecID(m.logger, execID.String()).Debug("cancel had no effect", "body", body)
	return MsgNotRunning, nil
}
