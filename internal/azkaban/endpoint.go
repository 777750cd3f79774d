package azkaban

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Пути Azkaban AJAX API.
const (
	PathExecutor = "/executor"
	PathManager  = "/manager"
	PathSchedule = "/schedule"
)

// Имя параметра сессии во всех аутентифицированных запросах.
const paramSession = "session.id"

// Transport — HTTP-транспорт, через который компоненты ходят в Azkaban.
//
// Реализуется *transport.Client; в тестах подменяется.
type Transport interface {
	Get(ctx context.Context, rawURL string) (string, error)
	PostForm(ctx context.Context, rawURL string, form url.Values) (string, error)
	PostMultipart(ctx context.Context, rawURL string, body io.Reader, contentType string) (string, error)
}

// Endpoint — базовый адрес сервера Azkaban.
type Endpoint struct {
	base string
}

// ParseEndpoint проверяет адрес и возвращает Endpoint.
// Допускаются только http и https; завершающий "/" отбрасывается.
func ParseEndpoint(raw string) (Endpoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Endpoint{}, fmt.Errorf("%w: empty", ErrInvalidEndpoint)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Endpoint{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return Endpoint{}, fmt.Errorf("%w: missing host", ErrInvalidEndpoint)
	}

	u.RawQuery = ""
	u.Fragment = ""
	return Endpoint{base: strings.TrimRight(u.String(), "/")}, nil
}

// MustParseEndpoint — ParseEndpoint, паникующий при ошибке. Для тестов.
func MustParseEndpoint(raw string) Endpoint {
	e, err := ParseEndpoint(raw)
	if err != nil {
		panic(err)
	}
	return e
}

// String возвращает базовый адрес.
func (e Endpoint) String() string {
	return e.base
}

// URL возвращает адрес ресурса path.
func (e Endpoint) URL(path string) string {
	return e.base + path
}

// Query возвращает адрес ресурса path с query-параметрами.
func (e Endpoint) Query(path string, q url.Values) string {
	return e.base + path + "?" + q.Encode()
}
