package database

import (
	"fmt"
	"time"
)

// Сроки и даты событий пользователи вводят руками, поэтому поле хранится
// как есть, а разбирается при чтении. Битая дата исключает запись из
// выборок по дате, но не ломает запрос целиком.
var dueDateLayouts = []string{"02.01.2006", "2006-01-02"}

const shortDateLayout = "02.01"

// ParseDueDate принимает DD.MM.YYYY, DD.MM (текущий год) и ISO-форму.
func ParseDueDate(raw string, now time.Time) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if due, err := time.Parse(layout, raw); err == nil {
			return due, nil
		}
	}

	if due, err := time.Parse(shortDateLayout, raw); err == nil {
		return time.Date(now.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("unparseable date: %q", raw)
}

// ParseEventDate — даты событий приходят строго в форме DD.MM.YYYY.
func ParseEventDate(raw string) (time.Time, error) {
	return time.Parse("02.01.2006", raw)
}
