package cli

import "errors"

var (
	// ErrNoEndpoint — адрес Azkaban не задан ни флагом, ни в конфигурации.
	ErrNoEndpoint = errors.New("azkaban endpoint is not set (use --endpoint or AZKABAN_ENDPOINT)")

	// ErrNoCredentials — нет ни session_id, ни пары username/password.
	ErrNoCredentials = errors.New("username and password are required to log in")

	// ErrLoginFailed — Azkaban отклонил вход.
	ErrLoginFailed = errors.New("login failed")

	// ErrOperationFailed — Azkaban вернул ошибку в теле ответа.
	ErrOperationFailed = errors.New("operation failed")

	// ErrAuditDisabled — audit_db_url не задан.
	ErrAuditDisabled = errors.New("audit store is not configured (set audit_db_url)")

	// ErrEventsDisabled — amqp_url не задан.
	ErrEventsDisabled = errors.New("event bus is not configured (set amqp_url)")
)
