package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — имя обменника.
type Exchange string

// ExchangeEvents — topic-обменник событий операций.
// Routing key — тип события (flow.executed, project.removed, ...).
const ExchangeEvents Exchange = "azkaban.events"

// BindAll — ключ привязки ко всем событиям.
const BindAll = "#"

// SetupTopology объявляет обменник событий.
//
// Очереди не объявляются: подписчики создают свои
// (долговременные потребители или временные через DeclareTailQueue).
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeEvents), // name
			"topic",                // type
			true,                   // durable
			false,                  // auto-deleted
			false,                  // internal
			false,                  // no-wait
			nil,                    // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeEvents, err)
		}
		return nil
	})
}

// DeclareTailQueue создаёт временную эксклюзивную очередь, привязанную
// к ExchangeEvents по ключу bindingKey, и возвращает её имя.
// Очередь удаляется брокером при закрытии соединения.
func DeclareTailQueue(ctx context.Context, conn *Connection, bindingKey string) (string, error) {
	if bindingKey == "" {
		bindingKey = BindAll
	}

	var name string
	err := conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		q, err := ch.QueueDeclare(
			"",    // имя назначит брокер
			false, // durable
			true,  // delete when unused
			true,  // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("declare tail queue: %w", err)
		}

		if err := ch.QueueBind(q.Name, bindingKey, string(ExchangeEvents), false, nil); err != nil {
			return fmt.Errorf("bind %s to %s: %w", q.Name, ExchangeEvents, err)
		}
		name = q.Name
		return nil
	})
	return name, err
}
