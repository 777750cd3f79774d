package repo

import "errors"

var (
	// ErrNoDSN — строка подключения не задана.
	ErrNoDSN = errors.New("database url is not set")

	// ErrNotFound — запись не найдена в БД.
	ErrNotFound = errors.New("not found")
)
