package orchestrator

import (
	"github.com/shaiso/azkaban-submitter/internal/domain"
)

// Stage — этап teardown.
type Stage string

// Этапы в порядке выполнения.
const (
	StageFetchFlows Stage = "fetch-flows"
	StageUnschedule Stage = "unschedule"
	StageCancel     Stage = "cancel"
	StageDelete     Stage = "delete"
	StageVerify     Stage = "verify"
)

// Outcome — итог одного шага.
type Outcome string

const (
	// OutcomeOK — шаг выполнен.
	OutcomeOK Outcome = "ok"

	// OutcomeWarn — шаг не дал эффекта, teardown продолжается
	// (flow не был запланирован, execution уже завершён).
	OutcomeWarn Outcome = "warn"

	// OutcomeFailed — шаг прервал teardown.
	OutcomeFailed Outcome = "failed"
)

// Step — один выполненный шаг teardown.
type Step struct {
	Stage   Stage   `json:"stage"`
	Target  string  `json:"target"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"`
}

// Report — протокол teardown проекта.
//
// Заполняется по мере выполнения и возвращается и при успехе, и при сбое.
type Report struct {
	Project   string    `json:"project"`
	ProjectID domain.ID `json:"project_id,omitempty"`
	Steps     []Step    `json:"steps"`
}

func newReport(project string) *Report {
	return &Report{Project: project, Steps: []Step{}}
}

func (r *Report) add(stage Stage, target string, outcome Outcome, detail string) {
	r.Steps = append(r.Steps, Step{Stage: stage, Target: target, Outcome: outcome, Detail: detail})
}

// Completed возвращает шаги, завершившиеся без сбоя.
func (r *Report) Completed() []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.Outcome != OutcomeFailed {
			out = append(out, s)
		}
	}
	return out
}

// Failed возвращает шаг, прервавший teardown, или nil.
func (r *Report) Failed() *Step {
	for i := range r.Steps {
		if r.Steps[i].Outcome == OutcomeFailed {
			return &r.Steps[i]
		}
	}
	return nil
}

// Warnings возвращает шаги с OutcomeWarn.
func (r *Report) Warnings() []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.Outcome == OutcomeWarn {
			out = append(out, s)
		}
	}
	return out
}
