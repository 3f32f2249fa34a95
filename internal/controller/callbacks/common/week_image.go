package common

import (
	"bytes"
	"image/color"
	"sync"

	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 110
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 8
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 9
	defaultMaxHour   = 18
)

// Константы шрифтов
const (
	titleFontSize      = 26.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 18.0
	slotTimeFontSize   = 16.0
	legendItemFontSize = 14.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 90}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{225, 225, 225, 255}
	closedDayColor = color.NRGBA{200, 200, 200, 255}

	slotFreeColor       = color.RGBA{133, 193, 85, 220}
	slotBusyColor       = color.RGBA{255, 182, 193, 255}
	slotTextColor       = color.RGBA{20, 24, 28, 230}
	slotBusyTextColor   = color.RGBA{120, 40, 50, 255}
	slotShadowColor     = color.RGBA{0, 0, 0, 20}
	legendItemTextColor = color.RGBA{70, 74, 78, 220}
)

// DayAvailability рабочие часы и свободные слоты одного дня
type DayAvailability struct {
	Date model.Date
	Rule model.DayRule
	Free []model.Clock
}

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont загружает шрифт указанного стиля или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsMu.Lock()
	parsed, ok := cachedFonts[style]
	if !ok {
		data := goregular.TTF
		if style == FontStyleBold {
			data = gobold.TTF
		}
		var err error
		parsed, err = opentype.Parse(data)
		if err != nil {
			parsed = nil
		}
		cachedFonts[style] = parsed
	}
	fontsMu.Unlock()

	if parsed != nil {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	// fallback к встроенному шрифту
	dc.SetFontFace(basicfont.Face7x13)
}

// GenerateWeekImage рисует PNG с рабочими часами и занятостью барбершопа по дням
func GenerateWeekImage(shopName string, today model.Date, days []DayAvailability) ([]byte, error) {
	dc := createCanvas()
	if len(days) == 0 {
		drawHeader(dc, shopName, days)
		return encodeImage(dc)
	}

	hours := calculateHourRange(days)
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / len(days)
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, shopName, days)
	drawHourLabels(dc, hours, cellHeight)
	for i, day := range days {
		x := float64(leftLabelsWidth + i*dayWidth)
		drawDay(dc, day, day.Date == today, i, x, dayWidth, dayHeight, hours, cellHeight)
	}
	drawLegend(dc, leftLabelsWidth+len(days)*dayWidth)

	return encodeImage(dc)
}

// calculateHourRange определяет диапазон часов по рабочим дням
func calculateHourRange(days []DayAvailability) hourRange {
	minHour := 24
	maxHour := 0

	for _, day := range days {
		if !day.Rule.Enabled {
			continue
		}
		startH := day.Rule.OpenTime.Hour()
		endH := day.Rule.CloseTime.Hour()
		if day.Rule.CloseTime.Minute() > 0 {
			endH++
		}
		minHour = min(minHour, startH)
		maxHour = max(maxHour, endH)
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := max(minHour-hourPaddingTop, 0)
	endHour := min(maxHour+hourPaddingBot, 24)

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour,
	}
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует название барбершопа и месяц
func drawHeader(dc *gg.Context, shopName string, days []DayAvailability) {
	title := shopName
	if len(days) > 0 {
		first := days[0].Date.Month
		last := days[len(days)-1].Date.Month
		title += " · " + formatting.GetMonthName(first)
		if first != last {
			title += " - " + formatting.GetMonthName(last)
		}
	}

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/4, 0, 0.5)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, FontStyleDefault)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		label := model.NewClock(hours.start+hIdx, 0).String()
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDay рисует колонку дня: фон, заголовок, линии часов и слоты
func drawDay(dc *gg.Context, day DayAvailability, isToday bool, index int, x float64, dayWidth, dayHeight int, hours hourRange, cellHeight float64) {
	y := float64(headerHeight)

	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case !day.Rule.Enabled:
		dc.SetColor(closedDayColor)
	case index%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()

	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	center := x + float64(dayWidth)/2
	dc.DrawStringAnchored(day.Date.Time().Format("02.01"), center, y-45, 0.5, 0.5)
	dc.DrawStringAnchored(formatting.GetWeekdayShortName(day.Date.Time().Weekday()), center, y-18, 0.5, 0.5)

	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}

	if !day.Rule.Enabled {
		return
	}

	free := make(map[model.Clock]bool, len(day.Free))
	for _, c := range day.Free {
		free[c] = true
	}
	for t := day.Rule.OpenTime; t < day.Rule.CloseTime; t += model.SlotMinutes {
		drawSlot(dc, t, free[t], x, dayWidth, hours, cellHeight)
	}
}

// drawSlot рисует один слот сетки
func drawSlot(dc *gg.Context, start model.Clock, isFree bool, x float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour := float64(start) / 60.0
	slotY := float64(headerHeight) + (startHour-float64(hours.start))*cellHeight
	slotHeight := float64(model.SlotMinutes) / 60.0 * cellHeight
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	fillColor, txtColor := slotBusyColor, slotBusyTextColor
	if isFree {
		fillColor, txtColor = slotFreeColor, slotTextColor
	}

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	if slotHeight > slotTimeFontSize+4 {
		loadFont(dc, slotTimeFontSize, FontStyleDefault)
		dc.SetColor(txtColor)
		dc.DrawStringAnchored(start.String(), x+dayPaddingX+8, slotY+slotHeight/2, 0, 0.35)
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, legendX int) {
	items := []struct {
		Label string
		Clr   color.Color
	}{
		{"Свободно", slotFreeColor},
		{"Занято", slotBusyColor},
		{"Выходной", closedDayColor},
	}

	boxW, boxH := 20.0, 14.0
	liX := float64(legendX + 10)
	liY := float64(imageHeight) - 100.0

	loadFont(dc, legendItemFontSize, FontStyleDefault)
	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemTextColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
