package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SlotMinutes ширина слота сетки бронирования
const SlotMinutes = 30

const SlotDuration = SlotMinutes * time.Minute

const minutesPerDay = 24 * 60

// Clock время суток в минутах от полуночи (локальное время барбершопа).
// Допустимый диапазон [0, 1440], где 1440 ("24:00") используется только как время закрытия.
type Clock int

// NewClock собирает Clock из часов и минут
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock разбирает строку формата "HH:MM"
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || !twoDigits(hh) || !twoDigits(mm) {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}

	if minute < 0 || minute > 59 || hour < 0 || hour > 24 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}

	return NewClock(hour, minute), nil
}

// twoDigits проверяет что s ровно две ASCII-цифры без знака
func twoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// Valid проверяет что значение внутри суток
func (c Clock) Valid() bool {
	return c >= 0 && c <= minutesPerDay
}

// OnGrid проверяет что время кратно ширине слота
func (c Clock) OnGrid() bool {
	return c.Valid() && int(c)%SlotMinutes == 0
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
