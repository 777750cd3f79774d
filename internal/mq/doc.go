// Package mq публикует события операций клиента в RabbitMQ.
//
// Структура:
//   - connection.go — соединение с таймаутом и опциональным переподключением
//   - topology.go   — topic-обменник azkaban.events и временные очереди
//   - publisher.go  — публикация событий (приёмник журнала)
//   - consumer.go   — чтение событий для events tail
//
// Routing key совпадает с типом события:
//
//	session.created, flow.executed, execution.cancelled, flow.scheduled,
//	flow.unscheduled, project.created, project.uploaded, project.removed
//
// Подписка на все события проекта: ключ "#", только запуски: "flow.executed".
package mq
