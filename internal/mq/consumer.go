package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/azkaban-submitter/internal/domain"
)

// EventHandler обрабатывает событие, полученное из очереди.
type EventHandler func(ctx context.Context, ev *domain.Event) error

// Consumer читает события из очереди до отмены контекста.
type Consumer struct {
	conn    *Connection
	logger  *slog.Logger
	queue   string
	handler EventHandler
}

// NewConsumer создаёт Consumer.
func NewConsumer(conn *Connection, queue string, handler EventHandler, logger *slog.Logger) *Consumer {
	return &Consumer{conn: conn, logger: logger, queue: queue, handler: handler}
}

// Run потребляет сообщения до отмены ctx.
// При разрыве ждёт переподключения и продолжает.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		deliveries, err := c.consume()
		if err != nil {
			c.logger.Warn("consume failed, waiting for reconnect", "queue", c.queue, "error", err)
		} else if err := c.process(ctx, deliveries); err == nil || ctx.Err() != nil {
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.conn.Reconnected():
		}
	}
}

func (c *Consumer) consume() (<-chan amqp.Delivery, error) {
	ch := c.conn.Channel()
	if ch == nil {
		return nil, ErrNoChannel
	}
	if err := ch.Qos(16, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		true,    // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", c.queue, err)
	}
	return deliveries, nil
}

// process возвращает nil при отмене ctx и ошибку при закрытии канала доставки.
func (c *Consumer) process(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-deliveries:
			if !ok {
				return ErrNoChannel
			}
			c.handle(ctx, raw)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, raw amqp.Delivery) {
	ev, err := DecodeEvent(raw.Body)
	if err != nil {
		c.logger.Warn("dropping malformed message", "message_id", raw.MessageId, "error", err)
		raw.Nack(false, false)
		return
	}

	if err := c.handler(ctx, ev); err != nil {
		c.logger.Warn("event handler failed", "message_id", raw.MessageId, "error", err)
		raw.Nack(false, false)
		return
	}
	raw.Ack(false)
}

// DecodeEvent разбирает тело сообщения, опубликованного Publisher.
func DecodeEvent(body []byte) (*domain.Event, error) {
	var env struct {
		Type    domain.EventType `json:"type"`
		Payload json.RawMessage  `json:"payload"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unmarshal message: %w", err)
	}
	if len(env.Payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedMessage)
	}

	var ev domain.Event
	if err := json.Unmarshal(env.Payload, &ev); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	if ev.Type == "" {
		ev.Type = env.Type
	}
	return &ev, nil
}
