// Package orchestrator выводит проект Azkaban из эксплуатации.
//
// Teardown выполняет этапы строго по порядку:
//   - fetch-flows — flows проекта и его числовой ID
//   - unschedule  — снятие расписания каждого flow; ошибка прерывает teardown
//   - cancel      — отмена выполняющихся executions; "не выполнялся" только предупреждение
//   - delete      — удаление проекта (без подтверждения со стороны Azkaban)
//   - verify      — повторный fetch-flows, flows не должно остаться
//
// Каждый шаг попадает в Report. При сбое возвращается *StepError с этапом,
// целью и уже выполненными шагами; откат не выполняется.
package orchestrator
