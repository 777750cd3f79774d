package config

import "errors"

// ErrInvalidValue — значение настройки не прошло проверку.
var ErrInvalidValue = errors.New("invalid config value")
