package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"ERROR": slog.LevelError,
		"":      slog.LevelWarn,
		"bogus": slog.LevelWarn,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(LogOptions{Level: "INFO", Format: "json", Output: &buf})
	WithProject(logger, "P").Info("hello")

	out := buf.String()
	if !strings.Contains(out, `"project":"P"`) {
		t.Errorf("expected project attribute in %q", out)
	}
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("expected msg in %q", out)
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("POST", "/executor", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", "/manager", 0, time.Millisecond)
	m.ObserveOperation("execute", "succeeded")

	path := filepath.Join(t.TempDir(), "azkaban.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		`azkaban_client_requests_total{method="POST",outcome="200",path="/executor"} 1`,
		`azkaban_client_requests_total{method="GET",outcome="error",path="/manager"} 1`,
		`azkaban_client_operations_total{operation="execute",outcome="succeeded"} 1`,
		`azkaban_client_last_run_timestamp_seconds`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "/", 200, time.Second)
	m.ObserveOperation("login", "failed")
	if err := m.WriteTextfile("/nonexistent/file"); err != nil {
		t.Errorf("nil metrics should not write: %v", err)
	}
}

func TestSetupTracing_Disabled(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}
