package azkaban

import (
	"log/slog"
)

// Client объединяет компоненты API поверх одного Transport.
type Client struct {
	Endpoint   Endpoint
	Auth       *Authenticator
	Executions *ExecutionManager
	Schedules  *ScheduleManager
	Uploads    *Uploader
	Projects   *ProjectManager
}

// NewClient создаёт все компоненты с общим Transport.
func NewClient(endpoint Endpoint, t Transport, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		Endpoint:   endpoint,
		Auth:       NewAuthenticator(endpoint, t, logger),
		Executions: NewExecutionManager(endpoint, t, logger),
		Schedules:  NewScheduleManager(endpoint, t, logger),
		Uploads:    NewUploader(endpoint, t, logger),
		Projects:   NewProjectManager(endpoint, t, logger),
	}
}
