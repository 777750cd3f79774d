package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Session — токен сессии Azkaban (session.id).
//
// Получается при login и передаётся параметром в каждый последующий запрос.
// Не обновляется и не истекает в рамках процесса.
type Session string

// IsZero возвращает true, если сессия ещё не получена.
func (s Session) IsZero() bool {
	return s == ""
}

// ID — идентификатор, который Azkaban отдаёт то строкой, то числом
// (projectId, version, execid, scheduleId).
//
// При декодировании принимает оба варианта, при кодировании всегда пишет строку.
type ID string

// UnmarshalJSON принимает JSON-строку, число или null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String возвращает идентификатор как строку.
func (id ID) String() string {
	return string(id)
}

// IsEmptyAck сообщает, считается ли ответ Azkaban подтверждением успеха.
//
// cancelFlow и delete не возвращают структурированного результата:
// успех определяется только пустым телом ответа.
func IsEmptyAck(body string) bool {
	return len(bytes.TrimSpace([]byte(body))) == 0
}
