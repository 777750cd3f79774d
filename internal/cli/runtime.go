package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/shaiso/azkaban-submitter/internal/azkaban"
	"github.com/shaiso/azkaban-submitter/internal/config"
	"github.com/shaiso/azkaban-submitter/internal/domain"
	"github.com/shaiso/azkaban-submitter/internal/journal"
	"github.com/shaiso/azkaban-submitter/internal/mq"
	"github.com/shaiso/azkaban-submitter/internal/repo"
	"github.com/shaiso/azkaban-submitter/internal/telemetry"
	"github.com/shaiso/azkaban-submitter/internal/transport"
)

// Options — глобальные флаги CLI и окружение процесса.
//
// Непустые значения флагов перекрывают конфигурацию.
type Options struct {
	ConfigPath string
	Endpoint   string
	Username   string
	Password   string
	SessionID  string
	Insecure   bool
	Timeout    time.Duration
	JSON       bool
	Verbose    bool

	// InsecureSet — флаг --insecure задан явно и перекрывает config и окружение.
	InsecureSet bool

	Stdout io.Writer
	Stderr io.Writer

	// Getenv и Home подменяются в тестах.
	Getenv func(string) string
	Home   string
}

// Runtime лениво создаёт зависимости команд: конфигурацию, логгер,
// HTTP-транспорт, клиент Azkaban, сессию и журнал операций.
type Runtime struct {
	opts *Options

	cfg     *config.Config
	logger  *slog.Logger
	metrics *telemetry.Metrics
	client  *azkaban.Client
	http    *transport.Client
	session domain.Session
	journal *journal.Journal
	audit   *repo.EventRepo
	now     func() time.Time

	closers []func(context.Context) error
}

// NewRuntime создаёт Runtime. Ничего не подключается до первого обращения.
func NewRuntime(opts *Options) *Runtime {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Runtime{opts: opts, now: time.Now}
}

// Output возвращает форматтер вывода.
func (r *Runtime) Output() *Output {
	return NewOutputTo(r.opts.JSON, r.opts.Stdout, r.opts.Stderr)
}

// Config загружает конфигурацию и накладывает флаги.
func (r *Runtime) Config() (*config.Config, error) {
	if r.cfg != nil {
		return r.cfg, nil
	}

	cfg, err := config.Load(config.LoadOptions{
		Path:   r.opts.ConfigPath,
		Getenv: r.opts.Getenv,
		Home:   r.opts.Home,
	})
	if err != nil {
		return nil, err
	}

	o := r.opts
	if o.Endpoint != "" {
		cfg.Endpoint = o.Endpoint
	}
	if o.Username != "" {
		cfg.Username = o.Username
	}
	if o.Password != "" {
		cfg.Password = o.Password
	}
	if o.SessionID != "" {
		cfg.SessionID = o.SessionID
	}
	if o.InsecureSet {
		cfg.Insecure = o.Insecure
	}
	if o.Timeout > 0 {
		cfg.Timeout = o.Timeout
	}
	if o.Verbose {
		cfg.LogLevel = "DEBUG"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r.cfg = cfg
	return cfg, nil
}

// Logger возвращает логгер, настроенный по конфигурации.
func (r *Runtime) Logger() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}

	opts := telemetry.LogOptions{Output: r.opts.Stderr}
	if cfg, err := r.Config(); err == nil {
		opts.Level, opts.Format = cfg.LogLevel, cfg.LogFormat
	}
	r.logger = telemetry.SetupLogger(opts)
	return r.logger
}

// Metrics возвращает реестр метрик процесса.
func (r *Runtime) Metrics() *telemetry.Metrics {
	if r.metrics == nil {
		r.metrics = telemetry.NewMetrics()
	}
	return r.metrics
}

// Client возвращает клиент Azkaban. Требует endpoint.
func (r *Runtime) Client(ctx context.Context) (*azkaban.Client, error) {
	if r.client != nil {
		return r.client, nil
	}

	cfg, err := r.Config()
	if err != nil {
		return nil, err
	}
	if cfg.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	endpoint, err := azkaban.ParseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	logger := r.Logger()
	shutdown, err := telemetry.SetupTracing(ctx, cfg.OTLPEndpoint)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	} else {
		r.closers = append(r.closers, shutdown)
	}

	r.http = transport.New(transport.Config{
		Insecure: cfg.Insecure,
		Timeout:  cfg.Timeout,
		Metrics:  r.Metrics(),
		Logger:   logger,
	})
	r.client = azkaban.NewClient(endpoint, r.http, logger)
	loc := cfg.Location()
	r.client.Schedules.WithClock(func() time.Time { return r.now().In(loc) })
	return r.client, nil
}

// Session возвращает сессию: session_id из конфигурации или результат login.
func (r *Runtime) Session(ctx context.Context) (domain.Session, error) {
	if !r.session.IsZero() {
		return r.session, nil
	}

	client, err := r.Client(ctx)
	if err != nil {
		return "", err
	}
	if r.cfg.SessionID != "" {
		r.session = domain.Session(r.cfg.SessionID)
		return r.session, nil
	}

	auth, err := r.Login(ctx, client)
	if err != nil {
		return "", err
	}
	r.session = auth.SessionID
	return r.session, nil
}

// Login выполняет вход с учётными данными из конфигурации.
func (r *Runtime) Login(ctx context.Context, client *azkaban.Client) (*domain.AuthResult, error) {
	if r.cfg.Username == "" || r.cfg.Password == "" {
		return nil, ErrNoCredentials
	}

	auth := client.Auth.Login(ctx, r.cfg.Username, r.cfg.Password)
	ev := r.newEvent(domain.EventSessionCreated)
	if auth.HasError() {
		r.Finish(ctx, "login", ev.Fail(auth.Error))
		return nil, fmt.Errorf("%w: %s", ErrLoginFailed, auth.Error)
	}
	r.Finish(ctx, "login", ev)
	return auth, nil
}

// Journal возвращает журнал операций. Недоступные приёмники пропускаются с предупреждением.
func (r *Runtime) Journal(ctx context.Context) *journal.Journal {
	if r.journal != nil {
		return r.journal
	}

	logger := r.Logger()
	r.journal = journal.New(logger, journal.NewLogSink(logger))

	cfg, err := r.Config()
	if err != nil {
		return r.journal
	}

	if cfg.AuditDBURL != "" {
		if audit, err := r.Audit(ctx); err != nil {
			logger.Warn("audit store unavailable", "error", err)
		} else {
			r.journal.Add(audit)
		}
	}

	if cfg.AMQPURL != "" {
		conn, err := r.dialAMQP(ctx, false)
		if err != nil {
			logger.Warn("event publishing unavailable", "error", err)
		} else {
			r.journal.Add(mq.NewPublisher(conn, logger))
		}
	}
	return r.journal
}

// Audit подключает хранилище журнала операций.
func (r *Runtime) Audit(ctx context.Context) (*repo.EventRepo, error) {
	if r.audit != nil {
		return r.audit, nil
	}

	cfg, err := r.Config()
	if err != nil {
		return nil, err
	}
	if cfg.AuditDBURL == "" {
		return nil, ErrAuditDisabled
	}

	pool, err := repo.NewPool(ctx, cfg.AuditDBURL)
	if err != nil {
		return nil, fmt.Errorf("connect audit store: %w", err)
	}
	r.closers = append(r.closers, func(context.Context) error {
		pool.Close()
		return nil
	})

	audit := repo.NewEventRepo(pool)
	if err := audit.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	r.audit = audit
	return audit, nil
}

func (r *Runtime) dialAMQP(ctx context.Context, reconnect bool) (*mq.Connection, error) {
	cfg, err := r.Config()
	if err != nil {
		return nil, err
	}
	if cfg.AMQPURL == "" {
		return nil, ErrEventsDisabled
	}

	conn, err := mq.Dial(cfg.AMQPURL, mq.Options{Reconnect: reconnect, Logger: r.Logger()})
	if err != nil {
		return nil, err
	}
	r.closers = append(r.closers, func(context.Context) error { return conn.Close() })

	if err := mq.SetupTopology(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func (r *Runtime) newEvent(t domain.EventType) *domain.Event {
	ev := domain.NewEvent(t, "")
	if r.cfg != nil {
		ev.Endpoint = r.cfg.Endpoint
		ev.User = r.cfg.Username
	}
	return ev
}

// Finish фиксирует итог операции в метриках и, если есть событие, в журнале.
func (r *Runtime) Finish(ctx context.Context, operation string, ev *domain.Event) {
	if ev == nil {
		return
	}
	r.Metrics().ObserveOperation(operation, string(ev.Outcome))
	r.Journal(ctx).Record(ctx, ev)
}

// Observe фиксирует итог операции без события (только чтение).
func (r *Runtime) Observe(operation string, err error) {
	outcome := domain.OutcomeSucceeded
	if err != nil {
		outcome = domain.OutcomeFailed
	}
	r.Metrics().ObserveOperation(operation, string(outcome))
}

// Close сбрасывает метрики и закрывает подключения.
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error

	if r.cfg != nil && r.cfg.MetricsFile != "" && r.metrics != nil {
		if err := r.metrics.WriteTextfile(r.cfg.MetricsFile); err != nil {
			errs = append(errs, err)
		}
	}
	if r.http != nil {
		r.http.CloseIdleConnections()
	}
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
