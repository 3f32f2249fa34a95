package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
)

// FormatDate форматирует дату
func FormatDate(d model.Date) string {
	return d.Time().Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с коротким днём недели
func FormatDateWithWeekday(d model.Date) string {
	return fmt.Sprintf("%s (%s)", FormatDate(d), GetWeekdayShortName(d.Time().Weekday()))
}

// FormatSlotRange форматирует слот как диапазон времени
func FormatSlotRange(start model.Clock) string {
	return fmt.Sprintf("%s-%s", start, start+model.SlotMinutes)
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetMonthName возвращает название месяца на русском
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}
