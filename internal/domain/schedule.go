package domain

// SchedulerResult — ответ на ajax=scheduleFlow и ajax=scheduleCronFlow.
type SchedulerResult struct {
	ErrorResult

	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`

	// ScheduleID — возвращается только для cron-расписаний.
	ScheduleID ID `json:"scheduleId,omitempty"`
}

// NewSchedulerFailure создаёт ошибочный SchedulerResult.
func NewSchedulerFailure(msg string) *SchedulerResult {
	return &SchedulerResult{ErrorResult: ErrorResult{Error: msg}}
}

// RemoveScheduleResult — ответ на action=removeSched.
//
// Ошибка передаётся через status, а не через поле error.
type RemoveScheduleResult struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// HasError возвращает true, если status == "error".
func (r *RemoveScheduleResult) HasError() bool {
	return r.Status == StatusError
}

// NotScheduledResult — результат для ответа, который не удалось разобрать как JSON.
//
// Azkaban отвечает не-JSON телом, если flow не был запланирован.
func NotScheduledResult() *RemoveScheduleResult {
	return &RemoveScheduleResult{
		Status:  StatusUnknown,
		Message: "Flow might not have been scheduled",
	}
}

// FetchScheduleResult — ответ на ajax=fetchSchedule.
type FetchScheduleResult struct {
	ErrorResult

	// Schedule — nil, если у flow нет расписания.
	Schedule *ScheduleInfo `json:"schedule,omitempty"`
}

// ScheduleInfo — расписание flow в Azkaban.
type ScheduleInfo struct {
	ScheduleID     ID     `json:"scheduleId"`
	SubmitUser     string `json:"submitUser,omitempty"`
	FirstSchedTime string `json:"firstSchedTime,omitempty"`
	NextExecTime   string `json:"nextExecTime,omitempty"`
	Period         string `json:"period,omitempty"`
}
