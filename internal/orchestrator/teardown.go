package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaiso/azkaban-submitter/internal/azkaban"
	"github.com/shaiso/azkaban-submitter/internal/domain"
)

// Projects — операции с проектом, нужные teardown.
type Projects interface {
	FetchFlows(ctx context.Context, session domain.Session, project string) (*domain.ProjectFlowsResult, error)
	Delete(ctx context.Context, session domain.Session, project string) (string, error)
}

// Schedules — снятие расписаний.
type Schedules interface {
	RemoveSchedule(ctx context.Context, session domain.Session, projectID domain.ID, flow string) (*domain.RemoveScheduleResult, error)
}

// Executions — поиск и отмена выполняющихся executions.
type Executions interface {
	Running(ctx context.Context, session domain.Session, project, flow string) (*domain.RunningExecutionsResult, error)
	Cancel(ctx context.Context, session domain.Session, execID domain.ID) (string, error)
}

// Config — конфигурация Teardown.
type Config struct {
	Projects   Projects
	Schedules  Schedules
	Executions Executions
	Logger     *slog.Logger
}

// Teardown полностью выводит проект из эксплуатации:
//
//	fetch-flows -> unschedule -> cancel -> delete -> verify
//
// Этапы выполняются строго по порядку, внутри этапа flows и executions
// обрабатываются последовательно, по одному запросу за раз.
// Компенсирующих действий нет: при сбое проект остаётся частично разобранным,
// а Report и StepError показывают, что уже сделано.
type Teardown struct {
	projects   Projects
	schedules  Schedules
	executions Executions
	logger     *slog.Logger
}

// New создаёт Teardown.
func New(cfg Config) *Teardown {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Teardown{
		projects:   cfg.Projects,
		schedules:  cfg.Schedules,
		executions: cfg.Executions,
		logger:     logger,
	}
}

// NewFromClient создаёт Teardown поверх azkaban.Client.
func NewFromClient(client *azkaban.Client, logger *slog.Logger) *Teardown {
	return New(Config{
		Projects:   client.Projects,
		Schedules:  client.Schedules,
		Executions: client.Executions,
		Logger:     logger,
	})
}

// Remove удаляет проект и возвращает протокол с его числовым ID.
//
// При сбое возвращает частичный Report и *StepError.
func (t *Teardown) Remove(ctx context.Context, session domain.Session, project string) (*Report, error) {
	report := newReport(project)
	logger := t.logger.With("project", project)

	fail := func(stage Stage, target string, err error) (*Report, error) {
		completed := report.Completed()
		report.add(stage, target, OutcomeFailed, err.Error())
		logger.Error("teardown failed", "stage", stage, "target", target, "error", err)
		return report, &StepError{Stage: stage, Target: target, Completed: completed, Err: err}
	}

	// 1. Flows проекта и его числовой ID
	flows, err := t.projects.FetchFlows(ctx, session, project)
	if err != nil {
		return fail(StageFetchFlows, project, err)
	}
	if flows == nil {
		return fail(StageFetchFlows, project, ErrProjectNotFound)
	}
	if flows.HasError() {
		return fail(StageFetchFlows, project, fmt.Errorf("%w: %s", ErrProjectNotFound, flows.Error))
	}

	report.ProjectID = flows.ProjectID
	names := flows.FlowNames()
	report.add(StageFetchFlows, project, OutcomeOK, fmt.Sprintf("project id %s, %d flow(s)", flows.ProjectID, len(names)))
	logger.Info("fetched flows", "project_id", flows.ProjectID.String(), "flows", len(names))

	// 2. Снятие расписаний, первая ошибка прерывает teardown
	for _, flow := range names {
		res, err := t.schedules.RemoveSchedule(ctx, session, flows.ProjectID, flow)
		if err != nil {
			return fail(StageUnschedule, flow, err)
		}
		if res.HasError() {
			return fail(StageUnschedule, flow, fmt.Errorf("%w: %s", ErrUnscheduleFailed, res.Message))
		}

		outcome := OutcomeOK
		if res.Status == domain.StatusUnknown {
			outcome = OutcomeWarn
		}
		report.add(StageUnschedule, flow, outcome, res.Message)
		logger.Debug("unscheduled flow", "flow", flow, "status", res.Status)
	}

	// 3. Отмена выполняющихся executions
	for _, flow := range names {
		running, err := t.executions.Running(ctx, session, project, flow)
		if err != nil {
			return fail(StageCancel, flow, err)
		}
		if running.HasError() {
			report.add(StageCancel, flow, OutcomeWarn, running.Error)
			logger.Warn("could not list running executions", "flow", flow, "error", running.Error)
			continue
		}

		for _, execID := range running.ExecIDs {
			target := flow + "/" + execID.String()
			logger.Info("canceling execution", "flow", flow, "exec_id", execID.String())

			msg, err := t.executions.Cancel(ctx, session, execID)
			if err != nil {
				return fail(StageCancel, target, err)
			}
			if msg != "" {
				report.add(StageCancel, target, OutcomeWarn, msg)
				logger.Warn("tried to cancel execution but it was not running", "exec_id", execID.String())
				continue
			}
			report.add(StageCancel, target, OutcomeOK, "")
		}
	}

	// 4. Удаление, Azkaban не подтверждает результат
	logger.Info("attempting to delete project")
	body, err := t.projects.Delete(ctx, session, project)
	if err != nil {
		return fail(StageDelete, project, err)
	}
	detail := "acknowledged"
	if !domain.IsEmptyAck(body) {
		detail = "no confirmation"
	}
	report.add(StageDelete, project, OutcomeOK, detail)

	// 5. Проверка: flows не должно остаться
	verify, err := t.projects.FetchFlows(ctx, session, project)
	if err != nil {
		return fail(StageVerify, project, err)
	}
	if verify != nil && !verify.HasError() && len(verify.Flows) > 0 {
		return fail(StageVerify, project,
			fmt.Errorf("%w: project still has %d flow(s)", ErrDeletionUnsuccessful, len(verify.Flows)))
	}
	report.add(StageVerify, project, OutcomeOK, "")

	logger.Info("project removed", "project_id", report.ProjectID.String())
	return report, nil
}
