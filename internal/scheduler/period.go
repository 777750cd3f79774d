package scheduler

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Единицы периода повторения Azkaban.
const (
	UnitMonth  = 'M'
	UnitWeek   = 'w'
	UnitDay    = 'd'
	UnitHour   = 'h'
	UnitMinute = 'm'
	UnitSecond = 's'
)

// Period — период повторения расписания в формате <digits><unit>.
type Period struct {
	Value int
	Unit  byte

	// digits — числовой префикс в исходном виде ("00" в "00d").
	digits string
}

// ParsePeriod разбирает строку вида "1d", "30m", "2M".
//
// Последний символ должен быть одной из единиц M, w, d, h, m, s,
// префикс — непустая последовательность цифр (включая "0" и "00").
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Period{}, fmt.Errorf("%w: empty", ErrInvalidPeriod)
	}

	unit := s[len(s)-1]
	if !isPeriodUnit(unit) {
		return Period{}, fmt.Errorf("%w: '%c' is an invalid period unit, should be one of [Mwdhms]", ErrInvalidPeriod, unit)
	}

	digits := s[:len(s)-1]
	if !isDigits(digits) {
		return Period{}, fmt.Errorf("%w: %q must start with a number", ErrInvalidPeriod, s)
	}

	value, err := strconv.Atoi(digits)
	if err != nil {
		// только переполнение: префикс уже проверен
		value = math.MaxInt
	}

	return Period{Value: value, Unit: unit, digits: digits}, nil
}

// ValidatePeriod проверяет строку периода.
func ValidatePeriod(s string) error {
	_, err := ParsePeriod(s)
	return err
}

// String возвращает период в формате Azkaban, сохраняя исходный числовой префикс.
func (p Period) String() string {
	digits := p.digits
	if digits == "" {
		digits = strconv.Itoa(p.Value)
	}
	return digits + string(p.Unit)
}

func isPeriodUnit(c byte) bool {
	switch c {
	case UnitMonth, UnitWeek, UnitDay, UnitHour, UnitMinute, UnitSecond:
		return true
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
