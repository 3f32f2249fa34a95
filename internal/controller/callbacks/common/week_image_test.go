package common

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekDays(rules ...model.DayRule) []DayAvailability {
	days := make([]DayAvailability, 0, len(rules))
	for i, rule := range rules {
		days = append(days, DayAvailability{Date: today.AddDays(i), Rule: rule})
	}
	return days
}

func TestCalculateHourRange(t *testing.T) {
	days := weekDays(
		model.DayRule{Enabled: true, OpenTime: model.NewClock(9, 0), CloseTime: model.NewClock(18, 0)},
		model.DayRule{Enabled: true, OpenTime: model.NewClock(8, 0), CloseTime: model.NewClock(20, 30)},
		model.DayRule{Enabled: false, OpenTime: model.NewClock(0, 0), CloseTime: model.NewClock(24, 0)},
	)

	hours := calculateHourRange(days)

	assert.Equal(t, 7, hours.start)
	assert.Equal(t, 22, hours.end)
	assert.Equal(t, 15, hours.total)
}

func TestCalculateHourRangeClampsAndDefaults(t *testing.T) {
	open24 := weekDays(model.DayRule{Enabled: true, OpenTime: 0, CloseTime: model.NewClock(24, 0)})
	hours := calculateHourRange(open24)
	assert.Equal(t, 0, hours.start)
	assert.Equal(t, 24, hours.total)

	closed := weekDays(model.DayRule{Enabled: false})
	hours = calculateHourRange(closed)
	assert.Equal(t, defaultMinHour-hourPaddingTop, hours.start)
}

func TestGenerateWeekImage(t *testing.T) {
	days := weekDays(
		model.DayRule{Enabled: true, OpenTime: model.NewClock(9, 0), CloseTime: model.NewClock(12, 0)},
		model.DayRule{Enabled: false},
	)
	days[0].Free = []model.Clock{model.NewClock(9, 0), model.NewClock(10, 30)}

	data, err := GenerateWeekImage("Classic Cuts Studio", today, days)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestGenerateWeekImageWithoutDays(t *testing.T) {
	data, err := GenerateWeekImage("Empty", today, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
