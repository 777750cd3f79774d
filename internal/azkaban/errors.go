package azkaban

import "errors"

var (
	// ErrInvalidEndpoint — адрес Azkaban не является http(s) URL.
	ErrInvalidEndpoint = errors.New("invalid azkaban endpoint")

	// ErrNoSession — операция вызвана без session.id.
	ErrNoSession = errors.New("no azkaban session")

	// ErrDecodeResponse — ответ сервиса не удалось разобрать как JSON.
	ErrDecodeResponse = errors.New("decode azkaban response")
)

// MsgNotRunning — сообщение cancel, если Azkaban ответил непустым телом.
const MsgNotRunning = "Flow isn't running"
