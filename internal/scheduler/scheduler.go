package scheduler

import (
	"fmt"
	"time"
)

// DefaultOffset — сдвиг времени первого запуска, если время не задано.
//
// Azkaban не планирует flow на текущий или прошедший момент, а при сдвиге
// в одну минуту запрос может не успеть до смены минуты.
const DefaultOffset = 2 * time.Minute

// DateLayout — формат scheduleDate в Azkaban.
const DateLayout = "01/02/2006"

// Spec — параметры scheduleFlow.
type Spec struct {
	// Date — дата первого запуска, MM/DD/YYYY.
	Date string

	// Time — время первого запуска, "hour,minute,am|pm,timezone".
	Time string

	// Period — период повторения. Пустой — однократный запуск.
	Period string
}

// IsRecurring возвращает true, если задан период.
func (s Spec) IsRecurring() bool {
	return s.Period != ""
}

// Resolve заполняет пустые Date и Time моментом now+DefaultOffset
// и проверяет Period и Date.
func (s Spec) Resolve(now time.Time) (Spec, error) {
	if s.Period != "" {
		p, err := ParsePeriod(s.Period)
		if err != nil {
			return Spec{}, err
		}
		s.Period = p.String()
	}

	if s.Date == "" {
		s.Date = DefaultScheduleDate(now)
	} else if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return Spec{}, fmt.Errorf("%w: %q, expected MM/DD/YYYY", ErrInvalidDate, s.Date)
	}

	if s.Time == "" {
		s.Time = DefaultScheduleTime(now)
	}

	return s, nil
}

// DefaultScheduleTime возвращает now+DefaultOffset в формате scheduleTime:
// час (0-23) и минута без ведущих нулей, "pm" начиная с 12 часов, имя зоны.
func DefaultScheduleTime(now time.Time) string {
	return FormatScheduleTime(now.Add(DefaultOffset))
}

// DefaultScheduleDate возвращает дату момента now+DefaultOffset.
func DefaultScheduleDate(now time.Time) string {
	return now.Add(DefaultOffset).Format(DateLayout)
}

// FormatScheduleTime форматирует t как scheduleTime.
func FormatScheduleTime(t time.Time) string {
	meridiem := "am"
	if t.Hour() >= 12 {
		meridiem = "pm"
	}
	return fmt.Sprintf("%d,%d,%s,%s", t.Hour(), t.Minute(), meridiem, zoneName(t))
}

// zoneName возвращает IANA-имя зоны, а для Local — аббревиатуру (MSK, UTC).
func zoneName(t time.Time) string {
	name := t.Location().String()
	if name == "Local" || name == "" {
		name, _ = t.Zone()
	}
	return name
}
