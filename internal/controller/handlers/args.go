package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/barber_booking/internal/model"
)

var errMissingArgument = errors.New("missing argument")

// commandArgs возвращает аргументы команды без самой команды.
// "/slots@barber_bot 1 2026-10-19" -> ["1", "2026-10-19"]
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

// parseSlotsArgs разбирает аргументы /slots <shopId> [YYYY-MM-DD].
// Без даты используется today.
func parseSlotsArgs(text string, today model.Date) (string, model.Date, error) {
	args := commandArgs(text)
	if len(args) == 0 {
		return "", model.Date{}, errMissingArgument
	}
	if len(args) > 2 {
		return "", model.Date{}, fmt.Errorf("too many arguments: %d", len(args))
	}

	date := today
	if len(args) == 2 {
		parsed, err := model.ParseDate(args[1])
		if err != nil {
			return "", model.Date{}, err
		}
		date = parsed
	}
	return args[0], date, nil
}

// parseSingleArg разбирает команду с одним обязательным аргументом
func parseSingleArg(text string) (string, error) {
	args := commandArgs(text)
	switch len(args) {
	case 0:
		return "", errMissingArgument
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("too many arguments: %d", len(args))
	}
}
