package azkaban

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/shaiso/azkaban-submitter/internal/domain"
	"github.com/shaiso/azkaban-submitter/internal/scheduler"
)

// ScheduleRequest — параметры ajax=scheduleFlow.
type ScheduleRequest struct {
	ProjectName string
	ProjectID   domain.ID
	Flow        string

	// Date, Time и Period — см. scheduler.Spec. Пустые Date и Time
	// заполняются моментом now+2m.
	Date   string
	Time   string
	Period string
}

// CronRequest — параметры ajax=scheduleCronFlow.
type CronRequest struct {
	ProjectName    string
	Flow           string
	CronExpression string
}

// ScheduleManager — создание, удаление и просмотр расписаний через /schedule.
type ScheduleManager struct {
	endpoint  Endpoint
	transport Transport
	logger    *slog.Logger
	now       func() time.Time
}

// NewScheduleManager создаёт ScheduleManager.
func NewScheduleManager(endpoint Endpoint, t Transport, logger *slog.Logger) *ScheduleManager {
	return &ScheduleManager{endpoint: endpoint, transport: t, logger: logger, now: time.Now}
}

// WithClock подменяет источник текущего времени.
func (m *ScheduleManager) WithClock(now func() time.Time) *ScheduleManager {
	m.now = now
	return m
}

// Schedule планирует flow (ajax=scheduleFlow).
//
// Ошибки, включая некорректный период, возвращаются в поле error результата.
func (m *ScheduleManager) Schedule(ctx context.Context, session domain.Session, req ScheduleRequest) *domain.SchedulerResult {
	if session.IsZero() {
		return domain.NewSchedulerFailure(ErrNoSession.Error())
	}

	spec, err := scheduler.Spec{Date: req.Date, Time: req.Time, Period: req.Period}.Resolve(m.now())
	if err != nil {
		return domain.NewSchedulerFailure(err.Error())
	}

	logger := m.logger.With("project", req.ProjectName, "flow", req.Flow)
	if req.Time == "" {
		logger.Warn("time option not provided", "using", spec.Time)
	}

	form := url.Values{
		"ajax":         {"scheduleFlow"},
		paramSession:   {string(session)},
		"projectName":  {req.ProjectName},
		"projectId":    {req.ProjectID.String()},
		"flow":         {req.Flow},
		"scheduleDate": {spec.Date},
		"scheduleTime": {spec.Time},
	}
	if spec.IsRecurring() {
		form.Set("is_recurring", "on")
		form.Set("period", spec.Period)
	}

	recurring := spec.Period
	if recurring == "" {
		recurring = "never"
	}
	logger.Info("scheduling flow", "date", spec.Date, "time", spec.Time, "recurring", recurring)

	body, err := m.transport.PostForm(ctx, m.endpoint.URL(PathSchedule), form)
	if err != nil {
		return domain.NewSchedulerFailure(err.Error())
	}

	var res domain.SchedulerResult
	if err := decode(body, &res); err != nil {
		return domain.NewSchedulerFailure(err.Error())
	}
	return &res
}

// ScheduleCron планирует flow по Quartz-выражению (ajax=scheduleCronFlow).
func (m *ScheduleManager) ScheduleCron(ctx context.Context, session domain.Session, req CronRequest) *domain.SchedulerResult {
	if session.IsZero() {
		return domain.NewSchedulerFailure(ErrNoSession.Error())
	}
	if err := scheduler.ValidateCron(req.CronExpression); err != nil {
		return domain.NewSchedulerFailure(err.Error())
	}

	form := url.Values{
		"ajax":           {"scheduleCronFlow"},
		paramSession:     {string(session)},
		"projectName":    {req.ProjectName},
		"flow":           {req.Flow},
		"cronExpression": {req.CronExpression},
	}

	m.logger.Info("scheduling flow", "project", req.ProjectName, "flow", req.Flow, "cron", req.CronExpression)

	body, err := m.transport.PostForm(ctx, m.endpoint.URL(PathSchedule), form)
	if err != nil {
		return domain.NewSchedulerFailure(err.Error())
	}

	var res domain.SchedulerResult
	if err := decode(body, &res); err != nil {
		return domain.NewSchedulerFailure(err.Error())
	}
	return &res
}

// RemoveSchedule снимает расписание flow (action=removeSched).
//
// Если тело ответа не JSON, flow, скорее всего, не был запланирован:
// возвращается domain.NotScheduledResult без ошибки.
// Транспортные ошибки возвращаются как error.
func (m *ScheduleManager) RemoveSchedule(ctx context.Context, session domain.Session, projectID domain.ID, flow string) (*domain.RemoveScheduleResult, error) {
	if session.IsZero() {
		return nil, ErrNoSession
	}

	form := url.Values{
		"action":     {"removeSched"},
		paramSession: {string(session)},
		"projectId":  {projectID.String()},
		"flowName":   {flow},
	}

	body, err := m.transport.PostForm(ctx, m.endpoint.URL(PathSchedule), form)
	if err != nil {
		return nil, fmt.Errorf("remove schedule: %w", err)
	}

	var res domain.RemoveScheduleResult
	if err := decode(body, &res); err != nil {
		m.logger.Debug("remove schedule: non-JSON response", "project_id", projectID.String(), "flow", flow)
		return domain.NotScheduledResult(), nil
	}
	return &res, nil
}

// FetchSchedule возвращает расписание flow (ajax=fetchSchedule).
// Result.Schedule == nil, если расписания нет.
func (m *ScheduleManager) FetchSchedule(ctx context.Context, session domain.Session, projectID domain.ID, flow string) (*domain.FetchScheduleResult, error) {
	if session.IsZero() {
		return nil, ErrNoSession
	}

	q := url.Values{
		paramSession: {string(session)},
		"ajax":       {"fetchSchedule"},
		"projectId":  {projectID.String()},
		"flowId":     {flow},
	}

	body, err := m.transport.Get(ctx, m.endpoint.Query(PathSchedule, q))
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}

	var res domain.FetchScheduleResult
	if domain.IsEmptyAck(body) {
		return &res, nil
	}
	if err := decode(body, &res); err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	return &res, nil
}
