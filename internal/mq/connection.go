package mq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DialTimeout — таймаут установки соединения.
const DialTimeout = 5 * time.Second

const (
	connectionName    = "azkaban-submitter"
	maxReconnectDelay = 30 * time.Second
)

// Options — параметры соединения.
type Options struct {
	// Reconnect включает переподключение при разрыве.
	// Нужен только долгоживущим потребителям (events tail).
	Reconnect bool

	Logger *slog.Logger
}

// Connection — AMQP соединение с одним каналом.
type Connection struct {
	url       string
	logger    *slog.Logger
	reconnect bool

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool

	done        chan struct{}
	reconnectCh chan struct{}
}

// Dial открывает соединение и канал.
func Dial(url string, opts Options) (*Connection, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Connection{
		url:         url,
		logger:      logger,
		reconnect:   opts.Reconnect,
		done:        make(chan struct{}),
		reconnectCh: make(chan struct{}, 1),
	}
	if err := c.open(); err != nil {
		return nil, err
	}

	if c.reconnect {
		go c.watch()
	}
	return c, nil
}

func (c *Connection) open() error {
	conn, err := amqp.DialConfig(c.url, amqp.Config{
		Dial:       amqp.DefaultDial(DialTimeout),
		Heartbeat:  10 * time.Second,
		Properties: amqp.Table{"connection_name": connectionName},
	})
	if err != nil {
		return fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	c.mu.Lock()
	c.conn, c.channel = conn, ch
	c.mu.Unlock()

	c.logger.Debug("connected to RabbitMQ")
	return nil
}

// watch ждёт разрыва и переподключается с растущей задержкой.
func (c *Connection) watch() {
	for {
		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		notify := conn.NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-c.done:
			return
		case amqpErr := <-notify:
			if amqpErr != nil {
				c.logger.Warn("RabbitMQ connection lost", "error", amqpErr)
			}
		}

		for delay := time.Second; ; delay = min(delay*2, maxReconnectDelay) {
			select {
			case <-c.done:
				return
			case <-time.After(delay):
			}

			if err := c.open(); err != nil {
				c.logger.Warn("reconnect failed", "error", err, "next_delay", min(delay*2, maxReconnectDelay))
				continue
			}

			select {
			case c.reconnectCh <- struct{}{}:
			default:
			}
			break
		}
	}
}

// Channel возвращает текущий канал.
func (c *Connection) Channel() *amqp.Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channel
}

// Reconnected сигнализирует о каждом успешном переподключении.
func (c *Connection) Reconnected() <-chan struct{} {
	return c.reconnectCh
}

// WithChannel выполняет fn с текущим каналом.
func (c *Connection) WithChannel(ctx context.Context, fn func(ch *amqp.Channel) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ch := c.Channel()
	if ch == nil || ch.IsClosed() {
		return ErrNoChannel
	}
	return fn(ch)
}

// Close закрывает канал и соединение.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)

	var errs []error
	if c.channel != nil && !c.channel.IsClosed() {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
	}
	if c.conn != nil && !c.conn.IsClosed() {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}
