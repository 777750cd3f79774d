package domain

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorChecker — общий интерфейс результатов с предикатом ошибки.
type errorChecker interface {
	HasError() bool
}

func TestHasError_ErrorFieldResults(t *testing.T) {
	factories := map[string]func() errorChecker{
		"auth":      func() errorChecker { return &AuthResult{} },
		"execution": func() errorChecker { return &ExecutionResult{} },
		"running":   func() errorChecker { return &RunningExecutionsResult{} },
		"scheduler": func() errorChecker { return &SchedulerResult{} },
		"fetch":     func() errorChecker { return &FetchScheduleResult{} },
		"uploader":  func() errorChecker { return &UploaderResult{} },
		"flows":     func() errorChecker { return &ProjectFlowsResult{} },
	}

	cases := []struct {
		body    string
		wantErr bool
	}{
		{`{}`, false},
		{`{"message":"ok","status":"success"}`, false},
		{`{"error":""}`, false},
		{`{"error":"boom"}`, true},
		{`{"error":"Project doesn't exist.","message":"x"}`, true},
	}

	for name, newResult := range factories {
		for _, tc := range cases {
			r := newResult()
			require.NoError(t, json.Unmarshal([]byte(tc.body), r), "%s: %s", name, tc.body)
			assert.Equal(t, tc.wantErr, r.HasError(), "%s: %s", name, tc.body)
		}
	}
}

func TestHasError_StatusResults(t *testing.T) {
	var rm RemoveScheduleResult
	require.NoError(t, json.Unmarshal([]byte(`{"status":"error","message":"no such flow"}`), &rm))
	assert.True(t, rm.HasError())

	rm = RemoveScheduleResult{}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"success","message":"removed"}`), &rm))
	assert.False(t, rm.HasError())

	var mr ManagerResult
	require.NoError(t, json.Unmarshal([]byte(`{"status":"error","message":"Project already exists."}`), &mr))
	assert.True(t, mr.HasError())

	assert.True(t, NewManagerFailure("dial tcp: refused").HasError())
	assert.False(t, NotScheduledResult().HasError())
}

func TestAuthResult_Deserialize(t *testing.T) {
	var r AuthResult
	body := `{ "error": "error", "session.id": "e7a29776-5783-49d7-afa0-b0e688096b5e"}`
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	assert.Equal(t, "error", r.Error)
	assert.Equal(t, Session("e7a29776-5783-49d7-afa0-b0e688096b5e"), r.SessionID)

	r = AuthResult{}
	require.NoError(t, json.Unmarshal([]byte(`{ "session.id": "e7a29776-5783-49d7-afa0-b0e688096b5e"}`), &r))
	assert.Empty(t, r.Error)
	assert.False(t, r.HasError())
}

func TestUploaderResult_NumericIDs(t *testing.T) {
	var r UploaderResult
	require.NoError(t, json.Unmarshal([]byte(`{ "error": "error", "projectId": 2, "version": 1}`), &r))
	assert.Equal(t, "error", r.Error)
	assert.Equal(t, ID("2"), r.ProjectID)
	assert.Equal(t, ID("1"), r.Version)

	r = UploaderResult{}
	require.NoError(t, json.Unmarshal([]byte(`{ "projectId": 2, "version": 1}`), &r))
	assert.False(t, r.HasError())
	assert.Equal(t, "2", r.ProjectID.String())
}

func TestID_Unmarshal(t *testing.T) {
	cases := map[string]ID{
		`"123"`: "123",
		`123`:   "123",
		`null`:  "",
		`"abc"`: "abc",
		`12.5`:  "12.5",
	}
	for raw, want := range cases {
		var id ID
		require.NoError(t, json.Unmarshal([]byte(raw), &id), raw)
		assert.Equal(t, want, id, raw)
	}

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestResults_WireRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   any
		wire string
	}{
		{
			name: "auth",
			in:   &AuthResult{SessionID: "e7a29776", Status: StatusSuccess},
			wire: `{"session.id":"e7a29776","status":"success"}`,
		},
		{
			name: "execution",
			in:   &ExecutionResult{Project: "P", Flow: "F", ExecID: "123", Message: "started"},
			wire: `{"project":"P","flow":"F","execid":"123","message":"started"}`,
		},
		{
			name: "running",
			in:   &RunningExecutionsResult{ExecIDs: []ID{"100", "101"}},
			wire: `{"execIds":["100","101"]}`,
		},
		{
			name: "scheduler",
			in:   &SchedulerResult{Status: StatusSuccess, Message: "P.F scheduled.", ScheduleID: "9"},
			wire: `{"status":"success","message":"P.F scheduled.","scheduleId":"9"}`,
		},
		{
			name: "remove schedule",
			in:   &RemoveScheduleResult{Status: StatusSuccess, Message: "flow F removed from Schedules."},
			wire: `{"status":"success","message":"flow F removed from Schedules."}`,
		},
		{
			name: "fetch schedule",
			in: &FetchScheduleResult{Schedule: &ScheduleInfo{
				ScheduleID:     "9",
				SubmitUser:     "azkaban",
				FirstSchedTime: "2026-10-18 10:00:00",
				NextExecTime:   "2026-10-19 10:00:00",
				Period:         "1 day(s)",
			}},
			wire: `{"schedule":{"scheduleId":"9","submitUser":"azkaban","firstSchedTime":"2026-10-18 10:00:00","nextExecTime":"2026-10-19 10:00:00","period":"1 day(s)"}}`,
		},
		{
			name: "uploader",
			in:   &UploaderResult{ProjectID: "7", Version: "3"},
			wire: `{"projectId":"7","version":"3"}`,
		},
		{
			name: "manager",
			in:   &ManagerResult{Action: "redirect", Status: StatusSuccess, Message: "Project created", Path: "manager?project=P"},
			wire: `{"action":"redirect","status":"success","message":"Project created","path":"manager?project=P"}`,
		},
		{
			name: "project flows",
			in:   &ProjectFlowsResult{Project: "P", ProjectID: "7", Flows: []FlowID{{FlowID: "F1"}, {FlowID: "F2"}}},
			wire: `{"project":"P","projectId":"7","flows":[{"flowId":"F1"},{"flowId":"F2"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wire, string(data))

			out := reflect.New(reflect.TypeOf(tt.in).Elem()).Interface()
			require.NoError(t, json.Unmarshal(data, out))
			assert.Equal(t, tt.in, out)
		})
	}
}

func TestProjectFlowsResult_FlowNames(t *testing.T) {
	var r ProjectFlowsResult
	require.NoError(t, json.Unmarshal([]byte(`{"project":"P","projectId":7,"flows":[{"flowId":"F1"},{"flowId":"F2"}]}`), &r))
	assert.Equal(t, ID("7"), r.ProjectID)
	assert.Equal(t, []string{"F1", "F2"}, r.FlowNames())
}

func TestIsEmptyAck(t *testing.T) {
	assert.True(t, IsEmptyAck(""))
	assert.True(t, IsEmptyAck(" \n"))
	assert.False(t, IsEmptyAck(`{"error":"Execution 5 is not running."}`))
}

func TestEvent_Fail(t *testing.T) {
	ev := NewEvent(EventFlowExecuted, "https://az:8443")
	assert.False(t, ev.Failed())
	assert.Equal(t, OutcomeSucceeded, ev.Outcome)

	ev.Fail("boom")
	assert.True(t, ev.Failed())
	assert.Equal(t, "boom", ev.Error)
}
