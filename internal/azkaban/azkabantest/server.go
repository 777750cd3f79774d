// Package azkabantest — поддельный сервер Azkaban для тестов.
package azkabantest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// Request — запрос, полученный сервером.
type Request struct {
	Method string
	Path   string

	// Action — значение ajax=, action= или "delete" для delete=true.
	Action string

	// Params — query и form параметры вместе.
	Params url.Values

	// File — содержимое части file для multipart-запросов.
	File            []byte
	FileName        string
	FileContentType string
}

// HandlerFunc возвращает тело ответа.
type HandlerFunc func(Request) string

// Server — httptest.Server, отвечающий по (path, action).
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]HandlerFunc
	requests []Request
}

// NewServer запускает сервер и закрывает его по завершении теста.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{handlers: make(map[string]HandlerFunc)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle регистрирует обработчик для path и action.
func (s *Server) Handle(path, action string, fn HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[key(path, action)] = fn
}

// Respond регистрирует фиксированный ответ.
func (s *Server) Respond(path, action, body string) {
	s.Handle(path, action, func(Request) string { return body })
}

// Requests возвращает все полученные запросы.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Calls возвращает запросы с указанным action в порядке поступления.
func (s *Server) Calls(action string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Action == action {
			out = append(out, r)
		}
	}
	return out
}

// Actions возвращает последовательность action всех запросов.
func (s *Server) Actions() []string {
	var out []string
	for _, r := range s.Requests() {
		out = append(out, r.Action)
	}
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	req := Request{Method: r.Method, Path: r.URL.Path}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if f, hdr, err := r.FormFile("file"); err == nil {
			req.File, _ = io.ReadAll(f)
			req.FileName = hdr.Filename
			req.FileContentType = hdr.Header.Get("Content-Type")
			f.Close()
		}
	} else if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Params = r.Form
	req.Action = actionOf(r.Form)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	fn, ok := s.handlers[key(req.Path, req.Action)]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"no handler for `+req.Path+` `+req.Action+`"}`)
		return
	}
	io.WriteString(w, fn(req))
}

func actionOf(form url.Values) string {
	switch {
	case form.Get("ajax") != "":
		return form.Get("ajax")
	case form.Get("action") != "":
		return form.Get("action")
	case form.Get("delete") == "true":
		return "delete"
	}
	return ""
}

func key(path, action string) string {
	if path == "" {
		path = "/"
	}
	return path + " " + action
}
