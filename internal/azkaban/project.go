package azkaban

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/shaiso/azkaban-submitter/internal/domain"
)

// ProjectManager — создание, список flows и удаление проектов через /manager.
type ProjectManager struct {
	endpoint  Endpoint
	transport Transport
	logger    *slog.Logger
}

// NewProjectManager создаёт ProjectManager.
func NewProjectManager(endpoint Endpoint, t Transport, logger *slog.Logger) *ProjectManager {
	return &ProjectManager{endpoint: endpoint, transport: t, logger: logger}
}

// Create создаёт проект (action=create).
//
// Ошибки возвращаются как ManagerResult со status=error.
func (m *ProjectManager) Create(ctx context.Context, session domain.Session, name, description string) *domain.ManagerResult {
	if session.IsZero() {
		return domain.NewManagerFailure(ErrNoSession.Error())
	}

	form := url.Values{
		paramSession:  {string(session)},
		"action":      {"create"},
		"name":        {name},
		"description": {description},
	}

	body, err := m.transport.PostForm(ctx, m.endpoint.URL(PathManager), form)
	if err != nil {
		return domain.NewManagerFailure(err.Error())
	}

	var res domain.ManagerResult
	if err := decode(body, &res); err != nil {
		return domain.NewManagerFailure(err.Error())
	}

	m.logger.Info("create project", "project", name, "status", res.Status)
	return &res
}

// FetchFlows возвращает flows проекта и его числовой ID (ajax=fetchprojectflows).
//
// Пустое тело ответа означает, что проекта нет: возвращается nil без ошибки.
func (m *ProjectManager) FetchFlows(ctx context.Context, session domain.Session, project string) (*domain.ProjectFlowsResult, error) {
	if session.IsZero() {
		return nil, ErrNoSession
	}

	q := url.Values{
		paramSession: {string(session)},
		"ajax":       {"fetchprojectflows"},
		"project":    {project},
	}

	body, err := m.transport.Get(ctx, m.endpoint.Query(PathManager, q))
	if err != nil {
		return nil, fmt.Errorf("fetch flows: %w", err)
	}
	if domain.IsEmptyAck(body) {
		return nil, nil
	}

	var res domain.ProjectFlowsResult
	if err := decode(body, &res); err != nil {
		return nil, fmt.Errorf("fetch flows: %w", err)
	}
	return &res, nil
}

// Delete удаляет проект (delete=true).
//
// Azkaban не возвращает структурированного подтверждения; тело ответа
// возвращается вызывающему, пустое тело считается подтверждением.
func (m *ProjectManager) Delete(ctx context.Context, session domain.Session, project string) (string, error) {
	if session.IsZero() {
		return "", ErrNoSession
	}

	q := url.Values{
		paramSession: {string(session)},
		"delete":     {"true"},
		"project":    {project},
	}

	body, err := m.transport.Get(ctx, m.endpoint.Query(PathManager, q))
	if err != nil {
		return "", fmt.Errorf("delete project: %w", err)
	}

	if domain.IsEmptyAck(body) {
		m.logger.Debug("delete acknowledged", "project", project)
	} else {
		m.logger.Debug("delete returned a body", "project", project, "bytes", len(body))
	}
	return body, nil
}
