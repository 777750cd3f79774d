// Package journal фиксирует выполненные операции клиента.
//
// Каждая команда CLI после обращения к Azkaban записывает domain.Event.
// Приёмники подключаются из конфигурации:
//   - LogSink          — всегда, в лог
//   - repo.EventRepo   — PostgreSQL, если задан audit_db_url
//   - mq.Publisher     — RabbitMQ, если задан amqp_url
package journal
