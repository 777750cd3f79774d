// Package repo хранит журнал операций клиента в PostgreSQL.
//
// Таблица operation_events создаётся через EventRepo.EnsureSchema при первом
// подключении; миграции не требуются.
package repo
