package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/azkaban-submitter/internal/domain"
)

// Message — конверт события в очереди.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип события, совпадает с routing key.
	Type domain.EventType `json:"type"`

	// Payload — событие.
	Payload any `json:"payload"`

	// Timestamp — время публикации.
	Timestamp time.Time `json:"timestamp"`
}

// NewEventMessage оборачивает событие в Message.
func NewEventMessage(ev *domain.Event) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Type:      ev.Type,
		Payload:   ev,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher публикует события операций в ExchangeEvents.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{conn: conn, logger: logger}
}

// Name — имя приёмника для журнала.
func (p *Publisher) Name() string {
	return "rabbitmq"
}

// Write публикует событие. Реализует приёмник журнала.
func (p *Publisher) Write(ctx context.Context, ev *domain.Event) error {
	return p.Publish(ctx, NewEventMessage(ev))
}

// Publish публикует сообщение с routing key = тип события.
func (p *Publisher) Publish(ctx context.Context, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	routingKey := string(msg.Type)
	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(ExchangeEvents),
			routingKey,
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Type:         routingKey,
				AppId:        connectionName,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", ExchangeEvents, routingKey, err)
		}

		p.logger.Debug("published event",
			"routing_key", routingKey,
			"message_id", msg.ID,
		)
		return nil
	})
}
