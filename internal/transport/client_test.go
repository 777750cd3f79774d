package transport

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shaiso/azkaban-submitter/internal/telemetry"
)

func newTestClient(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = telemetry.Discard()
	}
	return New(cfg)
}

func TestClient_Get(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"execIds":[1]}`))
	}))
	defer srv.Close()

	c := newTestClient(Config{})
	body, err := c.Get(context.Background(), srv.URL+"/executor?ajax=getRunning&session.id=abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != `{"execIds":[1]}` {
		t.Errorf("unexpected body %q", body)
	}
	if gotQuery.Get("session.id") != "abc" {
		t.Errorf("expected session.id=abc, got %q", gotQuery.Get("session.id"))
	}
}

func TestClient_PostForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("action") != "login" {
			t.Errorf("expected action=login, got %q", r.PostForm.Get("action"))
		}
		w.Write([]byte(`{"session.id":"abc"}`))
	}))
	defer srv.Close()

	c := newTestClient(Config{})
	body, err := c.PostForm(context.Background(), srv.URL, url.Values{"action": {"login"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "abc") {
		t.Errorf("unexpected body %q", body)
	}
}

func TestClient_PostMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "p.zip" || string(data) != "zipdata" {
			t.Errorf("unexpected file %q %q", hdr.Filename, data)
		}
		w.Write([]byte(`{"projectId":"1"}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "p.zip")
	fw.Write([]byte("zipdata"))
	mw.Close()

	c := newTestClient(Config{})
	body, err := c.PostMultipart(context.Background(), srv.URL+"/manager", &buf, mw.FormDataContentType())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != `{"projectId":"1"}` {
		t.Errorf("unexpected body %q", body)
	}
}

func TestClient_ReturnsBodyOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	c := newTestClient(Config{})
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != `{"error":"boom"}` {
		t.Errorf("unexpected body %q", body)
	}
}

func TestClient_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	m := telemetry.NewMetrics()
	c := newTestClient(Config{Metrics: m})
	if _, err := c.Get(context.Background(), addr+"/executor"); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestClient_TLSVerification(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	strict := newTestClient(Config{})
	if _, err := strict.Get(context.Background(), srv.URL); err == nil {
		t.Error("expected certificate error with verification enabled")
	}

	insecure := newTestClient(Config{Insecure: true})
	body, err := insecure.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error with verification disabled: %v", err)
	}
	if body != "ok" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(Config{})
	if _, err := c.Get(ctx, srv.URL); err == nil {
		t.Error("expected error for canceled context")
	}
}
