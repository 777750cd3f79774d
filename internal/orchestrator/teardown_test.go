package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/shaiso/azkaban-submitter/internal/azkaban"
	"github.com/shaiso/azkaban-submitter/internal/azkaban/azkabantest"
	"github.com/shaiso/azkaban-submitter/internal/domain"
	"github.com/shaiso/azkaban-submitter/internal/telemetry"
	"github.com/shaiso/azkaban-submitter/internal/transport"
)

// --- fakes ---

type fakeProjects struct {
	fetches  []*domain.ProjectFlowsResult
	fetchErr error
	deleted  []string
	calls    *[]string
}

func (f *fakeProjects) FetchFlows(_ context.Context, _ domain.Session, project string) (*domain.ProjectFlowsResult, error) {
	*f.calls = append(*f.calls, "fetch:"+project)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	res := f.fetches[0]
	if len(f.fetches) > 1 {
		f.fetches = f.fetches[1:]
	}
	return res, nil
}

func (f *fakeProjects) Delete(_ context.Context, _ domain.Session, project string) (string, error) {
	*f.calls = append(*f.calls, "delete:"+project)
	f.deleted = append(f.deleted, project)
	return "", nil
}

type fakeSchedules struct {
	results map[string]*domain.RemoveScheduleResult
	calls   *[]string
}

func (f *fakeSchedules) RemoveSchedule(_ context.Context, _ domain.Session, _ domain.ID, flow string) (*domain.RemoveScheduleResult, error) {
	*f.calls = append(*f.calls, "unschedule:"+flow)
	if res, ok := f.results[flow]; ok {
		return res, nil
	}
	return &domain.RemoveScheduleResult{Status: domain.StatusSuccess}, nil
}

type fakeExecutions struct {
	running    map[string][]domain.ID
	notActive  map[domain.ID]bool
	runningErr error
	cancelErr  error
	calls      *[]string
}

func (f *fakeExecutions) Running(_ context.Context, _ domain.Session, _, flow string) (*domain.RunningExecutionsResult, error) {
	*f.calls = append(*f.calls, "running:"+flow)
	if f.runningErr != nil {
		return nil, f.runningErr
	}
	return &domain.RunningExecutionsResult{ExecIDs: f.running[flow]}, nil
}

func (f *fakeExecutions) Cancel(_ context.Context, _ domain.Session, execID domain.ID) (string, error) {
	*f.calls = append(*f.calls, "cancel:"+execID.String())
	if f.cancelErr != nil {
		return "", f.cancelErr
	}
	if f.notActive[execID] {
		return azkaban.MsgNotRunning, nil
	}
	return "", nil
}

func flowsResult(id string, flows ...string) *domain.ProjectFlowsResult {
	res := &domain.ProjectFlowsResult{Project: "P", ProjectID: domain.ID(id)}
	for _, f := range flows {
		res.Flows = append(res.Flows, domain.FlowID{FlowID: f})
	}
	return res
}

type fixture struct {
	calls      []string
	projects   *fakeProjects
	schedules  *fakeSchedules
	executions *fakeExecutions
}

func newFixture(fetches ...*domain.ProjectFlowsResult) *fixture {
	f := &fixture{}
	f.projects = &fakeProjects{fetches: fetches, calls: &f.calls}
	f.schedules = &fakeSchedules{results: map[string]*domain.RemoveScheduleResult{}, calls: &f.calls}
	f.executions = &fakeExecutions{running: map[string][]domain.ID{}, notActive: map[domain.ID]bool{}, calls: &f.calls}
	return f
}

func (f *fixture) teardown() *Teardown {
	return New(Config{
		Projects:   f.projects,
		Schedules:  f.schedules,
		Executions: f.executions,
		Logger:     telemetry.Discard(),
	})
}

func equalCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected calls %v, got %v", want, got)
		}
	}
}

// --- tests ---

func TestTeardown_StageOrder(t *testing.T) {
	f := newFixture(flowsResult("42", "F1", "F2"), flowsResult("42"))
	f.executions.running["F1"] = []domain.ID{"100", "101"}
	f.executions.notActive["101"] = true

	report, err := f.teardown().Remove(context.Background(), "abc", "P")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ProjectID != "42" {
		t.Errorf("expected project id 42, got %q", report.ProjectID)
	}

	equalCalls(t, f.calls, []string{
		"fetch:P",
		"unschedule:F1",
		"unschedule:F2",
		"running:F1",
		"cancel:100",
		"cancel:101",
		"running:F2",
		"delete:P",
		"fetch:P",
	})

	warnings := report.Warnings()
	if len(warnings) != 1 || warnings[0].Target != "F1/101" {
		t.Errorf("expected one warning for F1/101, got %+v", warnings)
	}
	if report.Failed() != nil {
		t.Errorf("unexpected failed step %+v", report.Failed())
	}
}

func TestTeardown_UnscheduleErrorAborts(t *testing.T) {
	f := newFixture(flowsResult("42", "F1", "F2"))
	f.schedules.results["F1"] = &domain.RemoveScheduleResult{Status: domain.StatusError, Message: "Permission denied"}

	report, err := f.teardown().Remove(context.Background(), "abc", "P")
	if !errors.Is(err, ErrUnscheduleFailed) {
		t.Fatalf("expected ErrUnscheduleFailed, got %v", err)
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected *StepError, got %T", err)
	}
	if stepErr.Stage != StageUnschedule || stepErr.Target != "F1" {
		t.Errorf("unexpected failed step %s %s", stepErr.Stage, stepErr.Target)
	}
	if len(stepErr.Completed) != 1 || stepErr.Completed[0].Stage != StageFetchFlows {
		t.Errorf("expected only fetch-flows completed, got %+v", stepErr.Completed)
	}

	// ни F2, ни cancel, ни delete
	equalCalls(t, f.calls, []string{"fetch:P", "unschedule:F1"})
	if len(f.projects.deleted) != 0 {
		t.Error("project must not be deleted")
	}
	if failed := report.Failed(); failed == nil || failed.Stage != StageUnschedule {
		t.Errorf("expected failed unschedule step, got %+v", failed)
	}
}

func TestTeardown_CancelErrorAborts(t *testing.T) {
	resetErr := errors.New("connection reset by peer")

	tests := []struct {
		name   string
		setup  func(f *fixture)
		target string
		calls  []string
	}{
		{
			name: "cancel",
			setup: func(f *fixture) {
				f.executions.running["F1"] = []domain.ID{"100", "101"}
				f.executions.cancelErr = resetErr
			},
			target: "F1/100",
			calls:  []string{"fetch:P", "unschedule:F1", "unschedule:F2", "running:F1", "cancel:100"},
		},
		{
			name: "running",
			setup: func(f *fixture) {
				f.executions.runningErr = resetErr
			},
			target: "F1",
			calls:  []string{"fetch:P", "unschedule:F1", "unschedule:F2", "running:F1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(flowsResult("42", "F1", "F2"))
			tt.setup(f)

			report, err := f.teardown().Remove(context.Background(), "abc", "P")
			if !errors.Is(err, resetErr) {
				t.Fatalf("expected transport error, got %v", err)
			}

			var stepErr *StepError
			if !errors.As(err, &stepErr) {
				t.Fatalf("expected *StepError, got %T", err)
			}
			if stepErr.Stage != StageCancel || stepErr.Target != tt.target {
				t.Errorf("unexpected failed step %s %s", stepErr.Stage, stepErr.Target)
			}

			wantCompleted := []string{"fetch-flows P", "unschedule F1", "unschedule F2"}
			if len(stepErr.Completed) != len(wantCompleted) {
				t.Fatalf("expected completed %v, got %+v", wantCompleted, stepErr.Completed)
			}
			for i, step := range stepErr.Completed {
				if got := string(step.Stage) + " " + step.Target; got != wantCompleted[i] {
					t.Errorf("completed[%d]: expected %q, got %q", i, wantCompleted[i], got)
				}
			}

			equalCalls(t, f.calls, tt.calls)
			if len(f.projects.deleted) != 0 {
				t.Error("project must not be deleted")
			}
			if failed := report.Failed(); failed == nil || failed.Stage != StageCancel {
				t.Errorf("expected failed cancel step, got %+v", failed)
			}
		})
	}
}

func TestTeardown_NotScheduledIsWarning(t *testing.T) {
	f := newFixture(flowsResult("42", "F1"), nil)
	f.schedules.results["F1"] = domain.NotScheduledResult()

	report, err := f.teardown().Remove(context.Background(), "abc", "P")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Warnings()) != 1 || report.Warnings()[0].Stage != StageUnschedule {
		t.Errorf("expected unschedule warning, got %+v", report.Warnings())
	}
}

func TestTeardown_ProjectNotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.teardown().Remove(context.Background(), "abc", "missing")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}

	f = newFixture(&domain.ProjectFlowsResult{ErrorResult: domain.ErrorResult{Error: "Project missing doesn't exist."}})
	_, err = f.teardown().Remove(context.Background(), "abc", "missing")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestTeardown_FetchTransportError(t *testing.T) {
	f := newFixture()
	f.projects.fetchErr = errors.New("connection refused")

	_, err := f.teardown().Remove(context.Background(), "abc", "P")
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Stage != StageFetchFlows {
		t.Fatalf("expected fetch-flows StepError, got %v", err)
	}
}

func TestTeardown_DeletionUnsuccessful(t *testing.T) {
	f := newFixture(flowsResult("42", "F1"), flowsResult("42", "F1"))

	report, err := f.teardown().Remove(context.Background(), "abc", "P")
	if !errors.Is(err, ErrDeletionUnsuccessful) {
		t.Fatalf("expected ErrDeletionUnsuccessful, got %v", err)
	}

	var stepErr *StepError
	errors.As(err, &stepErr)
	if stepErr.Stage != StageVerify {
		t.Errorf("expected verify stage, got %s", stepErr.Stage)
	}
	if report.ProjectID != "42" {
		t.Errorf("report must keep project id, got %q", report.ProjectID)
	}
}

func TestTeardown_EmptyProject(t *testing.T) {
	f := newFixture(flowsResult("7"), nil)

	report, err := f.teardown().Remove(context.Background(), "abc", "P")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalCalls(t, f.calls, []string{"fetch:P", "delete:P", "fetch:P"})
	if report.ProjectID != "7" {
		t.Errorf("unexpected project id %q", report.ProjectID)
	}
}

// Полный сценарий поверх HTTP: один flow F1, расписание снимается,
// executions нет, после удаления flows не остаётся.
func TestTeardown_OverHTTP(t *testing.T) {
	srv := azkabantest.NewServer(t)

	fetches := 0
	srv.Handle(azkaban.PathManager, "fetchprojectflows", func(azkabantest.Request) string {
		fetches++
		if fetches == 1 {
			return `{"project":"P","projectId":42,"flows":[{"flowId":"F1"}]}`
		}
		return `{"project":"P","projectId":42,"flows":[]}`
	})
	srv.Respond(azkaban.PathSchedule, "removeSched", `{"status":"success","message":"flow F1 removed"}`)
	srv.Respond(azkaban.PathExecutor, "getRunning", `{}`)
	srv.Respond(azkaban.PathManager, "delete", "")

	logger := telemetry.Discard()
	client := azkaban.NewClient(azkaban.MustParseEndpoint(srv.URL), transport.New(transport.Config{Logger: logger}), logger)

	report, err := NewFromClient(client, logger).Remove(context.Background(), "abc", "P")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ProjectID != "42" {
		t.Errorf("expected project id 42, got %q", report.ProjectID)
	}

	want := []string{"fetchprojectflows", "removeSched", "getRunning", "delete", "fetchprojectflows"}
	got := srv.Actions()
	equalCalls(t, got, want)

	for _, r := range srv.Requests() {
		if r.Params.Get("session.id") != "abc" {
			t.Errorf("%s: expected session.id=abc, got %q", r.Action, r.Params.Get("session.id"))
		}
	}
}
