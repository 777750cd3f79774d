package scheduler

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser — парсер Quartz-выражений без поля года.
// Поле года отбрасывается перед разбором.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

var yearField = regexp.MustCompile(`^[0-9*?,/-]+$`)

// ParseCron разбирает Quartz-выражение Azkaban (6 или 7 полей:
// секунды, минуты, часы, день месяца, месяц, день недели, [год]).
//
// Ровно одно из полей "день месяца" и "день недели" должно быть "?".
// Дни недели нумеруются как в Quartz: 1 = SUN ... 7 = SAT.
// Для выражений с L, W или # возвращается ErrQuartzOnly.
func ParseCron(expr string) (cron.Schedule, error) {
	fields := strings.Fields(expr)
	if len(fields) != 6 && len(fields) != 7 {
		return nil, fmt.Errorf("%w %q: expected 6 or 7 fields, got %d", ErrInvalidCron, expr, len(fields))
	}

	if len(fields) == 7 && !yearField.MatchString(fields[6]) {
		return nil, fmt.Errorf("%w %q: bad year field %q", ErrInvalidCron, expr, fields[6])
	}

	dom, dow := fields[3], fields[5]
	if (dom == "?") == (dow == "?") {
		return nil, fmt.Errorf("%w %q: exactly one of day-of-month and day-of-week must be '?'", ErrInvalidCron, expr)
	}

	if quartzOnly(dom, dow) {
		return nil, fmt.Errorf("%w: %q", ErrQuartzOnly, expr)
	}

	shifted, err := shiftDow(dow)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidCron, expr, err)
	}

	spec := strings.Join([]string{fields[0], fields[1], fields[2], dom, fields[4], shifted}, " ")
	schedule, err := cronParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidCron, expr, err)
	}
	return schedule, nil
}

// ValidateCron проверяет Quartz-выражение перед отправкой в Azkaban.
// Выражения с L, W или # считаются корректными после структурной проверки.
func ValidateCron(expr string) error {
	_, err := ParseCron(expr)
	if errors.Is(err, ErrQuartzOnly) {
		return nil
	}
	return err
}

// NextFire вычисляет ближайшее время запуска после from в зоне loc.
// Поле года не учитывается.
func NextFire(expr string, from time.Time, loc *time.Location) (time.Time, error) {
	schedule, err := ParseCron(expr)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return schedule.Next(from.In(loc)), nil
}

func quartzOnly(dom, dow string) bool {
	if strings.ContainsAny(dom, "LW") {
		return true
	}
	if strings.Contains(dow, "#") {
		return true
	}
	for _, part := range strings.Split(dow, ",") {
		if strings.HasSuffix(part, "L") {
			return true
		}
	}
	return false
}

// shiftDow переводит числовые дни недели Quartz (1-7) в нумерацию robfig/cron (0-6).
// Шаг после "/" не сдвигается.
func shiftDow(dow string) (string, error) {
	parts := strings.Split(dow, ",")
	for i, part := range parts {
		base, step, hasStep := strings.Cut(part, "/")

		bounds := strings.Split(base, "-")
		for j, b := range bounds {
			n, err := strconv.Atoi(b)
			if err != nil {
				continue // *, ? или имя дня
			}
			if n < 1 || n > 7 {
				return "", fmt.Errorf("day-of-week %d out of range 1-7", n)
			}
			bounds[j] = strconv.Itoa(n - 1)
		}

		parts[i] = strings.Join(bounds, "-")
		if hasStep {
			parts[i] += "/" + step
		}
	}
	return strings.Join(parts, ","), nil
}
