package scheduler

import "errors"

var (
	// ErrInvalidPeriod — период не соответствует формату <int>[Mwdhms].
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidCron — cron-выражение не является корректным Quartz-выражением.
	ErrInvalidCron = errors.New("invalid cron expression")

	// ErrQuartzOnly — выражение использует L, W или #, для которых
	// локальный расчёт времени запуска недоступен.
	ErrQuartzOnly = errors.New("cron expression uses quartz-only features")

	// ErrInvalidDate — дата не в формате MM/DD/YYYY.
	ErrInvalidDate = errors.New("invalid schedule date")
)
