// Package azkaban — клиент AJAX API Azkaban.
//
// # Компоненты
//
//   - Authenticator    — action=login, обмен логина и пароля на session.id
//   - ExecutionManager — executeFlow, getRunning, cancelFlow (/executor)
//   - ScheduleManager  — scheduleFlow, scheduleCronFlow, removeSched, fetchSchedule (/schedule)
//   - Uploader         — ajax=upload, multipart-загрузка zip (/manager)
//   - ProjectManager   — action=create, fetchprojectflows, delete (/manager)
//
// Все компоненты получают общий Transport и принимают session.id
// параметром каждого вызова.
//
// # Ошибки
//
// Login, Execute, Schedule, ScheduleCron, Upload и Create никогда не возвращают
// error: транспортные сбои и ошибки разбора попадают в результат
// (HasError() == true). Running, Cancel, RemoveSchedule, FetchSchedule,
// FetchFlows и Delete возвращают транспортные ошибки и ошибки разбора как error.
// Исключение: RemoveSchedule превращает не-JSON ответ в результат со status=unknown.
//
// # Пример
//
//	endpoint, _ := azkaban.ParseEndpoint("https://azkaban:8443")
//	client := azkaban.NewClient(endpoint, transport.New(transport.Config{}), logger)
//
//	auth := client.Auth.Login(ctx, "azkaban", "azkaban")
//	if auth.HasError() {
//	    return errors.New(auth.Error)
//	}
//	res := client.Executions.Execute(ctx, auth.SessionID, "P", "F")
package azkaban
