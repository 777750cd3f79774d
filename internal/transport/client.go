package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/shaiso/azkaban-submitter/internal/telemetry"
)

// Размеры пула соединений по умолчанию.
const (
	DefaultMaxConns        = 200
	DefaultMaxConnsPerHost = 20
)

const tracerName = "github.com/shaiso/azkaban-submitter/internal/transport"

// Config — конфигурация транспорта.
type Config struct {
	// Insecure отключает проверку сертификата и имени хоста.
	// По умолчанию проверка включена.
	Insecure bool

	// Timeout — таймаут одного запроса. 0 — без таймаута.
	Timeout time.Duration

	// MaxConns — общий размер пула (default: 200).
	MaxConns int

	// MaxConnsPerHost — лимит соединений на хост (default: 20).
	MaxConnsPerHost int

	// Metrics — опционально.
	Metrics *telemetry.Metrics

	// Logger — опционально, по умолчанию slog.Default().
	Logger *slog.Logger
}

// Client — общий пул HTTP-соединений к Azkaban.
//
// Создаётся один раз на процесс и передаётся во все компоненты.
// Возвращает тело ответа строкой вне зависимости от HTTP-статуса:
// Azkaban сообщает об ошибках в теле JSON.
type Client struct {
	http    *http.Client
	metrics *telemetry.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// New создаёт Client.
func New(cfg Config) *Client {
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	perHost := cfg.MaxConnsPerHost
	if perHost <= 0 {
		perHost = DefaultMaxConnsPerHost
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Insecure {
		logger.Warn("TLS certificate and hostname verification disabled")
	}

	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        maxConns,
		MaxIdleConnsPerHost: perHost,
		MaxConnsPerHost:     perHost,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.Insecure,
		},
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: tr,
		},
		metrics: cfg.Metrics,
		logger:  logger,
		tracer:  telemetry.Tracer(tracerName),
	}
}

// Get выполняет GET по URL с уже собранной query-строкой.
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

// PostForm выполняет POST с form-urlencoded телом.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// PostMultipart выполняет POST с multipart телом.
// contentType должен содержать boundary (multipart.Writer.FormDataContentType).
func (c *Client) PostMultipart(ctx context.Context, rawURL string, body io.Reader, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}

// CloseIdleConnections закрывает простаивающие соединения пула.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

func (c *Client) do(req *http.Request) (string, error) {
	path := req.URL.Path
	if path == "" {
		path = "/"
	}

	ctx, span := c.tracer.Start(req.Context(), req.Method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("server.address", req.URL.Host),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	req = req.WithContext(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	req.Header.Set("Accept", "application/json")

	// session.id передаётся в query, поэтому в лог пишем только путь
	logger := c.logger.With("method", req.Method, "path", path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(req.Method, path, 0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Debug("request failed", "error", err)
		return "", fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.metrics.ObserveRequest(req.Method, path, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		logger.Warn("unexpected status", "status", resp.StatusCode)
	} else {
		logger.Debug("request completed", "status", resp.StatusCode, "duration", time.Since(start))
	}

	return string(body), nil
}
