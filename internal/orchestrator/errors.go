package orchestrator

import (
	"errors"
	"fmt"
)

// Ошибки teardown.
var (
	// ErrProjectNotFound — fetch flows не вернул проект.
	ErrProjectNotFound = errors.New("project not found")

	// ErrUnscheduleFailed — Azkaban отказал в снятии расписания.
	ErrUnscheduleFailed = errors.New("could not un-schedule flow")

	// ErrDeletionUnsuccessful — после удаления у проекта остались flows.
	ErrDeletionUnsuccessful = errors.New("deletion unsuccessful")
)

// StepError — ошибка этапа teardown.
//
// Completed содержит шаги, выполненные до сбоя: проект остаётся
// частично разобранным, откат не выполняется.
type StepError struct {
	Stage     Stage
	Target    string
	Completed []Step
	Err       error
}

// Error реализует error.
func (e *StepError) Error() string {
	return fmt.Sprintf("teardown %s %s: %v", e.Stage, e.Target, e.Err)
}

// Unwrap возвращает исходную ошибку.
func (e *StepError) Unwrap() error {
	return e.Err
}
