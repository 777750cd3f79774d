// Package telemetry обеспечивает наблюдаемость клиента.
//
// Включает:
//   - logging.go — structured logging через slog (в stderr)
//   - metrics.go — Prometheus метрики с выгрузкой в textfile
//   - tracing.go — OpenTelemetry трейсы с экспортом по OTLP
//
// Трейсинг и выгрузка метрик включаются только если заданы
// otlp_endpoint и metrics_file соответственно.
package telemetry
