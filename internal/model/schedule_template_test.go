package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func weekTemplate(open, close Clock) *ScheduleTemplate {
	tmpl := &ScheduleTemplate{ShopID: "1"}
	for _, day := range Weekdays() {
		tmpl.Days = append(tmpl.Days, DayRule{Weekday: day, Enabled: day != Sunday, OpenTime: open, CloseTime: close})
	}
	return tmpl
}

func TestScheduleTemplateValidate(t *testing.T) {
	assert.NoError(t, weekTemplate(NewClock(9, 0), NewClock(18, 0)).Validate())

	missing := weekTemplate(NewClock(9, 0), NewClock(18, 0))
	missing.Days = missing.Days[:6]
	assert.Error(t, missing.Validate())

	duplicate := weekTemplate(NewClock(9, 0), NewClock(18, 0))
	duplicate.Days[6].Weekday = Monday
	assert.Error(t, duplicate.Validate())

	unaligned := weekTemplate(NewClock(9, 15), NewClock(18, 0))
	assert.Error(t, unaligned.Validate())

	inverted := weekTemplate(NewClock(18, 0), NewClock(9, 0))
	assert.Error(t, inverted.Validate())

	noShop := weekTemplate(NewClock(9, 0), NewClock(18, 0))
	noShop.ShopID = ""
	assert.Error(t, noShop.Validate())
}

func TestScheduleTemplateDisabledDayMayHaveAnyOrder(t *testing.T) {
	tmpl := weekTemplate(NewClock(9, 0), NewClock(18, 0))
	tmpl.Days[6] = DayRule{Weekday: Sunday, Enabled: false, OpenTime: NewClock(17, 0), CloseTime: NewClock(9, 0)}
	assert.NoError(t, tmpl.Validate())
}

func TestScheduleTemplateRuleAndSort(t *testing.T) {
	tmpl := weekTemplate(NewClock(9, 0), NewClock(18, 0))
	tmpl.Days[0], tmpl.Days[6] = tmpl.Days[6], tmpl.Days[0]
	tmpl.Sort()
	assert.Equal(t, Monday, tmpl.Days[0].Weekday)
	assert.Equal(t, Sunday, tmpl.Days[6].Weekday)

	rule, ok := tmpl.Rule(Sunday)
	assert.True(t, ok)
	assert.False(t, rule.Enabled)

	var empty *ScheduleTemplate
	_, ok = empty.Rule(Monday)
	assert.False(t, ok)
}

func TestParseWeekday(t *testing.T) {
	w, err := ParseWeekday(" Monday ")
	assert.NoError(t, err)
	assert.Equal(t, Monday, w)

	_, err = ParseWeekday("funday")
	assert.Error(t, err)
}
