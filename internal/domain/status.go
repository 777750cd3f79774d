package domain

// ErrorResult — общее поле error, которое Azkaban добавляет в ответ при ошибке.
//
// Встраивается в результаты операций: результат либо успешный (error пустой),
// либо ошибочный (error заполнен).
type ErrorResult struct {
	Error string `json:"error,omitempty"`
}

// HasError возвращает true, если сервис сообщил об ошибке.
func (r ErrorResult) HasError() bool {
	return r.Error != ""
}

// Статусы ответов, использующих поле status вместо error.
const (
	// StatusSuccess — операция выполнена.
	StatusSuccess = "success"

	// StatusError — сервис сообщил об ошибке.
	StatusError = "error"

	// StatusUnknown — результат не удалось определить (ответ не JSON).
	StatusUnknown = "unknown"
)

// Outcome — итог операции для журнала.
type Outcome string

const (
	// OutcomeSucceeded — операция выполнена успешно.
	OutcomeSucceeded Outcome = "succeeded"

	// OutcomeFailed — операция завершилась ошибкой.
	OutcomeFailed Outcome = "failed"
)
