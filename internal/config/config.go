package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix — префикс переменных окружения.
const EnvPrefix = "AZKABAN_"

// Config — настройки клиента Azkaban.
type Config struct {
	// Endpoint — адрес Azkaban, например https://azkaban:8443.
	Endpoint string `yaml:"endpoint"`

	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// SessionID — готовая сессия; если задана, login не выполняется.
	SessionID string `yaml:"session_id"`

	// Insecure отключает проверку TLS-сертификата Azkaban.
	Insecure bool `yaml:"insecure"`

	// Timeout — таймаут HTTP-запроса, 0 — без таймаута.
	Timeout time.Duration `yaml:"timeout"`

	// Timezone — зона для времени расписания по умолчанию (IANA).
	Timezone string `yaml:"timezone"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// AuditDBURL — Postgres для журнала операций (опционально).
	AuditDBURL string `yaml:"audit_db_url"`

	// AMQPURL — RabbitMQ для публикации событий (опционально).
	AMQPURL string `yaml:"amqp_url"`

	// OTLPEndpoint — OTLP/gRPC коллектор трейсов (опционально).
	OTLPEndpoint string `yaml:"otlp_endpoint"`

	// MetricsFile — путь textfile для node_exporter (опционально).
	MetricsFile string `yaml:"metrics_file"`
}

// Default возвращает настройки по умолчанию.
func Default() *Config {
	return &Config{
		LogLevel:  "WARN",
		LogFormat: "text",
	}
}

// LoadOptions — источники конфигурации.
type LoadOptions struct {
	// Path — явный путь к YAML. Отсутствие файла по явному пути — ошибка.
	Path string

	// EnvFile — путь к .env (default: ".env"), отсутствие не ошибка.
	EnvFile string

	// Getenv — источник окружения (default: os.Getenv).
	Getenv func(string) string

	// Home — домашний каталог для ~/.azkaban/config.yaml (default: os.UserHomeDir).
	Home string
}

// Load собирает конфигурацию. Приоритет по возрастанию:
// значения по умолчанию, YAML-файл, .env, окружение.
// Флаги CLI накладываются вызывающим поверх результата.
func Load(opts LoadOptions) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()

	path, explicit := opts.Path, opts.Path != ""
	if path == "" {
		if p := getenv(EnvPrefix + "CONFIG"); p != "" {
			path, explicit = p, true
		}
	}
	if path == "" {
		path = defaultPath(opts.Home)
	}

	// файл по умолчанию необязателен
	if path != "" {
		if err := cfg.loadFile(path); err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
			return nil, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}

	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultPath(home string) string {
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = h
	}
	return filepath.Join(home, ".azkaban", "config.yaml")
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // пустой файл
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) string) error {
	strs := map[string]*string{
		EnvPrefix + "ENDPOINT":      &c.Endpoint,
		EnvPrefix + "USERNAME":      &c.Username,
		EnvPrefix + "PASSWORD":      &c.Password,
		EnvPrefix + "SESSION_ID":    &c.SessionID,
		EnvPrefix + "TIMEZONE":      &c.Timezone,
		EnvPrefix + "AUDIT_DB_URL":  &c.AuditDBURL,
		EnvPrefix + "AMQP_URL":      &c.AMQPURL,
		EnvPrefix + "OTLP_ENDPOINT": &c.OTLPEndpoint,
		EnvPrefix + "METRICS_FILE":  &c.MetricsFile,
		"LOG_LEVEL":                 &c.LogLevel,
		"LOG_FORMAT":                &c.LogFormat,
	}
	for key, dst := range strs {
		if v := lookup(key); v != "" {
			*dst = v
		}
	}

	if v := lookup(EnvPrefix + "INSECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sINSECURE=%q", ErrInvalidValue, EnvPrefix, v)
		}
		c.Insecure = b
	}

	if v := lookup(EnvPrefix + "TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sTIMEOUT=%q", ErrInvalidValue, EnvPrefix, v)
		}
		c.Timeout = d
	}

	return nil
}

// Validate проверяет значения, не обращаясь к сети.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalidValue, c.Timeout)
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q, expected text or json", ErrInvalidValue, c.LogFormat)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("%w: timezone %q: %v", ErrInvalidValue, c.Timezone, err)
		}
	}
	return nil
}

// Location возвращает зону расписаний (time.Local, если не задана).
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Redacted возвращает копию без секретов, для вывода пользователю.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Password != "" {
		out.Password = "********"
	}
	if out.SessionID != "" {
		out.SessionID = "********"
	}
	out.AuditDBURL = redactURL(out.AuditDBURL)
	out.AMQPURL = redactURL(out.AMQPURL)
	return &out
}

// redactURL скрывает пароль в user:pass@host.
func redactURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return raw
	}
	user, _, hasPass := strings.Cut(userinfo, ":")
	if !hasPass {
		return raw
	}
	return scheme + "://" + user + ":********@" + host
}

// Marshal возвращает конфигурацию в YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
