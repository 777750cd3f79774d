package domain

// AuthResult — ответ на action=login.
type AuthResult struct {
	ErrorResult

	// SessionID — токен сессии при успешном входе.
	SessionID Session `json:"session.id,omitempty"`

	// Status — статус, который иногда возвращает сервис.
	Status string `json:"status,omitempty"`
}

// NewAuthFailure создаёт ошибочный AuthResult с текстом ошибки.
func NewAuthFailure(msg string) *AuthResult {
	return &AuthResult{ErrorResult: ErrorResult{Error: msg}}
}

// ExecutionResult — ответ на ajax=executeFlow.
type ExecutionResult struct {
	ErrorResult

	Project string `json:"project,omitempty"`
	Flow    string `json:"flow,omitempty"`

	// ExecID — идентификатор созданного выполнения.
	ExecID ID `json:"execid,omitempty"`

	Message string `json:"message,omitempty"`
}

// NewExecutionFailure создаёт ошибочный ExecutionResult.
func NewExecutionFailure(msg string) *ExecutionResult {
	return &ExecutionResult{ErrorResult: ErrorResult{Error: msg}}
}

// RunningExecutionsResult — ответ на ajax=getRunning.
type RunningExecutionsResult struct {
	ErrorResult

	// ExecIDs — выполняющиеся сейчас executions flow.
	ExecIDs []ID `json:"execIds,omitempty"`
}
