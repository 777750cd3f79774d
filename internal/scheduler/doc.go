// Package scheduler — локальная подготовка расписаний Azkaban.
//
// Сам планировщик работает на стороне Azkaban. Пакет только проверяет
// и заполняет параметры до отправки запроса.
//
// Структура:
//   - scheduler.go — Spec: дата, время и период scheduleFlow, значения по умолчанию
//   - period.go    — разбор периода <int>[Mwdhms]
//   - cron.go      — проверка Quartz-выражений и расчёт ближайшего запуска
//
// Использование:
//
//	spec, err := scheduler.Spec{Period: "1d"}.Resolve(time.Now())
//	// spec.Date = "10/18/2026", spec.Time = "14,32,pm,Europe/Moscow"
package scheduler
