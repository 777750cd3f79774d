// Package cli реализует инструмент командной строки azkaban.
//
// # Обзор
//
// CLI работает с Azkaban напрямую по его HTTP API: вход, загрузка проектов,
// запуск и отмена flows, расписания, полное удаление проекта.
//
// # Ключевые компоненты
//
// ## Runtime
//
// Лениво создаёт зависимости после разбора PersistentFlags: конфигурацию
// (config.Load + флаги), логгер, HTTP-транспорт, azkaban.Client, сессию
// и журнал операций. Сессия берётся из --session-id или получается login
// по --username/--password один раз на процесс.
//
//	rt := cli.NewRuntime(&cli.Options{})
//	root := cli.NewRootCmd(rt, version)
//	err := root.ExecuteContext(ctx)
//	rt.Close(ctx)
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.Encoder) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Warn/Error) и логи — в stderr.
// Это позволяет использовать pipe: azkaban flow execute P F --json | jq .execid
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - login
//   - flow: execute, running, cancel
//   - schedule: create, cron, remove, show
//   - project: create, flows, upload, submit, remove
//   - history, events tail, config show
//
// Каждая группа создаётся фабричной функцией (NewFlowCmd и т.д.), принимающей *Runtime.
//
// Ошибки, которые Azkaban возвращает в теле ответа, превращаются в
// ErrOperationFailed и дают ненулевой код выхода.
package cli
