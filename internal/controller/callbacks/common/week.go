package common

import (
	"context"
	"errors"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/service"
)

// WeekDays количество дней на картинке занятости
const WeekDays = 7

// LoadWeekAvailability собирает рабочие часы и свободные слоты барбершопа на days дней начиная с from.
// Барбершоп без шаблона расписания даёт дни с выключенным правилом.
func LoadWeekAvailability(ctx context.Context, shops *service.ShopService, slots *service.SlotService, shopID string, from model.Date, days int) ([]DayAvailability, error) {
	template, err := shops.GetScheduleTemplate(ctx, shopID)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		return nil, err
	}

	result := make([]DayAvailability, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDays(i)
		rule, _ := template.Rule(date.Weekday())

		free, err := slots.AvailableSlots(ctx, shopID, date)
		if err != nil {
			return nil, err
		}
		result = append(result, DayAvailability{Date: date, Rule: rule, Free: free})
	}
	return result, nil
}
