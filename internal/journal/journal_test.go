package journal_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/azkaban-submitter/internal/domain"
	"github.com/shaiso/azkaban-submitter/internal/journal"
	"github.com/shaiso/azkaban-submitter/internal/telemetry"
)

type memorySink struct {
	name   string
	err    error
	events []*domain.Event
}

func (s *memorySink) Name() string { return s.name }

func (s *memorySink) Write(_ context.Context, ev *domain.Event) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, ev)
	return nil
}

func TestRecord_AllSinks(t *testing.T) {
	a := &memorySink{name: "a"}
	b := &memorySink{name: "b"}
	j := journal.New(telemetry.Discard(), a, nil, b)

	assert.Equal(t, []string{"a", "b"}, j.Sinks())

	ev := domain.NewEvent(domain.EventFlowExecuted, "http://azkaban:8081")
	assert.Equal(t, 2, j.Record(context.Background(), ev))
	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.Same(t, ev, a.events[0])
}

func TestRecord_FailingSinkDoesNotStopOthers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	broken := &memorySink{name: "broken", err: errors.New("connection refused")}
	ok := &memorySink{name: "ok"}
	j := journal.New(logger, broken, ok)

	n := j.Record(context.Background(), domain.NewEvent(domain.EventProjectRemoved, "http://azkaban:8081"))
	assert.Equal(t, 1, n)
	assert.Len(t, ok.events, 1)
	assert.Contains(t, buf.String(), "journal sink failed")
	assert.Contains(t, buf.String(), "sink=broken")
}

func TestRecord_NilJournal(t *testing.T) {
	var j *journal.Journal
	assert.Equal(t, 0, j.Record(context.Background(), domain.NewEvent(domain.EventFlowExecuted, "")))
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := journal.NewLogSink(slog.New(slog.NewTextHandler(&buf, nil)))

	ev := domain.NewEvent(domain.EventFlowExecuted, "http://azkaban:8081")
	ev.Project, ev.Flow, ev.ExecID = "P", "F", "123"
	require.NoError(t, sink.Write(context.Background(), ev))

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "flow.executed")
	assert.Contains(t, out, "project=P")
	assert.Contains(t, out, "exec_id=123")

	buf.Reset()
	failed := domain.NewEvent(domain.EventExecutionCancelled, "").Fail("Flow isn't running")
	require.NoError(t, sink.Write(context.Background(), failed))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "outcome=failed")
}
