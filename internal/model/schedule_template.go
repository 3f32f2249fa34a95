package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Weekday день недели в нижнем регистре на английском ("monday" ... "sunday")
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays возвращает дни недели в порядке отображения (с понедельника)
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// WeekdayOf переводит time.Weekday в Weekday
func WeekdayOf(w time.Weekday) Weekday {
	switch w {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// ParseWeekday разбирает название дня недели без учёта регистра
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if w.index() < 0 {
		return "", fmt.Errorf("unknown weekday %q", s)
	}
	return w, nil
}

func (w Weekday) index() int {
	for i, day := range Weekdays() {
		if day == w {
			return i
		}
	}
	return -1
}

// DayRule правило работы барбершопа на один день недели
type DayRule struct {
	Weekday   Weekday `json:"weekday"`
	Enabled   bool    `json:"enabled"`
	OpenTime  Clock   `json:"open_time"`
	CloseTime Clock   `json:"close_time"`
}

// ScheduleTemplate недельный шаблон рабочего времени барбершопа.
// Ровно одно правило на каждый день недели.
type ScheduleTemplate struct {
	ShopID    string    `json:"shop_id"`
	Days      []DayRule `json:"days"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rule возвращает правило для дня недели
func (t *ScheduleTemplate) Rule(w Weekday) (DayRule, bool) {
	if t == nil {
		return DayRule{}, false
	}
	for _, rule := range t.Days {
		if rule.Weekday == w {
			return rule, true
		}
	}
	return DayRule{}, false
}

// Sort упорядочивает правила с понедельника по воскресенье
func (t *ScheduleTemplate) Sort() {
	sort.SliceStable(t.Days, func(i, j int) bool {
		return t.Days[i].Weekday.index() < t.Days[j].Weekday.index()
	})
}

// Validate проверяет инварианты шаблона.
// Время, не выровненное по сетке слотов, отклоняется (без округления).
func (t *ScheduleTemplate) Validate() error {
	if strings.TrimSpace(t.ShopID) == "" {
		return fmt.Errorf("shop_id is required")
	}

	if len(t.Days) != len(Weekdays()) {
		return fmt.Errorf("schedule must contain exactly %d days, got %d", len(Weekdays()), len(t.Days))
	}

	seen := make(map[Weekday]bool, len(t.Days))
	for _, rule := range t.Days {
		if rule.Weekday.index() < 0 {
			return fmt.Errorf("unknown weekday %q", rule.Weekday)
		}
		if seen[rule.Weekday] {
			return fmt.Errorf("duplicate weekday %q", rule.Weekday)
		}
		seen[rule.Weekday] = true

		if !rule.OpenTime.OnGrid() || !rule.CloseTime.OnGrid() {
			return fmt.Errorf("%s: open and close times must be multiples of %d minutes", rule.Weekday, SlotMinutes)
		}
		if rule.Enabled && rule.OpenTime >= rule.CloseTime {
			return fmt.Errorf("%s: open time %s must be before close time %s", rule.Weekday, rule.OpenTime, rule.CloseTime)
		}
	}

	return nil
}
