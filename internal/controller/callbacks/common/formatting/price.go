package formatting

import "fmt"

// FormatPrice форматирует цену из центов
func FormatPrice(priceInCents int) string {
	return fmt.Sprintf("$%d.%02d", priceInCents/100, priceInCents%100)
}

// FormatPriceShort форматирует цену без центов если они равны 0
func FormatPriceShort(priceInCents int) string {
	if priceInCents%100 == 0 {
		return fmt.Sprintf("$%d", priceInCents/100)
	}
	return FormatPrice(priceInCents)
}
