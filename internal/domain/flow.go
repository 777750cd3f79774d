package domain

// UploaderResult — ответ на ajax=upload.
type UploaderResult struct {
	ErrorResult

	// ProjectID — числовой идентификатор проекта.
	ProjectID ID `json:"projectId,omitempty"`

	// Version — номер загруженной версии.
	Version ID `json:"version,omitempty"`
}

// NewUploaderFailure создаёт ошибочный UploaderResult.
func NewUploaderFailure(msg string) *UploaderResult {
	return &UploaderResult{ErrorResult: ErrorResult{Error: msg}}
}

// ManagerResult — ответ на action=create в /manager.
type ManagerResult struct {
	Action  string `json:"action,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Params  string `json:"params,omitempty"`
	Path    string `json:"path,omitempty"`
}

// NewManagerFailure создаёт ManagerResult со status=error.
func NewManagerFailure(msg string) *ManagerResult {
	return &ManagerResult{Status: StatusError, Message: msg}
}

// HasError возвращает true, если status == "error".
func (r *ManagerResult) HasError() bool {
	return r.Status == StatusError
}

// ProjectFlowsResult — ответ на ajax=fetchprojectflows.
//
// Связывает имя проекта (используется в операциях с flows)
// с его числовым ID (используется в операциях с расписаниями).
type ProjectFlowsResult struct {
	ErrorResult

	Project   string   `json:"project,omitempty"`
	ProjectID ID       `json:"projectId,omitempty"`
	Flows     []FlowID `json:"flows,omitempty"`
}

// FlowID — элемент списка flows проекта.
type FlowID struct {
	FlowID string `json:"flowId"`
}

// FlowNames возвращает имена flows в порядке ответа.
func (r *ProjectFlowsResult) FlowNames() []string {
	names := make([]string, 0, len(r.Flows))
	for _, f := range r.Flows {
		names = append(names, f.FlowID)
	}
	return names
}
