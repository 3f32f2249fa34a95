package model

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxIDLength максимальная длина ID барбершопа и услуги.
// ID передаются в callback data Telegram: самый длинный формат slot:<id>:YYYYMMDD:HHMM
// занимает 20 байт без ID при лимите 64.
const MaxIDLength = 40

// ValidateID проверяет клиентский ID: не длиннее MaxIDLength, без ':' и пробельных символов
func ValidateID(kind, id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%s is required", kind)
	case len(id) > MaxIDLength:
		return fmt.Errorf("%s must be at most %d bytes", kind, MaxIDLength)
	case strings.Contains(id, ":"):
		return fmt.Errorf("%s must not contain ':'", kind)
	case strings.IndexFunc(id, unicode.IsSpace) >= 0:
		return fmt.Errorf("%s must not contain spaces", kind)
	}
	return nil
}
