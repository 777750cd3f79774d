package mq

import "errors"

var (
	// ErrNoChannel — канал закрыт или ещё не открыт.
	ErrNoChannel = errors.New("no amqp channel available")

	// ErrMalformedMessage — сообщение не содержит события.
	ErrMalformedMessage = errors.New("malformed event message")
)
