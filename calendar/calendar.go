package calendar

import (
	"time"
)

type Parity string

const (
	ParityOdd  Parity = "odd"
	ParityEven Parity = "even"
)

// Calendar считает номер учебной недели и её чётность
// относительно даты начала семестра.
type Calendar struct {
	SemesterStart time.Time
}

func New(semesterStart time.Time) Calendar {
	return Calendar{SemesterStart: midnight(semesterStart)}
}

func (c Calendar) WeekNumber(date time.Time) int {
	return WeekNumber(date, c.SemesterStart)
}

func (c Calendar) Parity(date time.Time) Parity {
	return ParityFor(date, c.SemesterStart)
}

// WeekNumber возвращает номер учебной недели (с единицы).
// Первая неделя начинается с понедельника на дату начала семестра
// или со следующего за ней понедельника.
func WeekNumber(date, semesterStart time.Time) int {
	first := firstMonday(semesterStart)
	current := weekStart(date)

	weeks := int(current.Sub(first).Hours()/(24*7)) + 1
	if weeks < 1 {
		return 1
	}
	return weeks
}

func ParityFor(date, semesterStart time.Time) Parity {
	if WeekNumber(date, semesterStart)%2 == 1 {
		return ParityOdd
	}
	return ParityEven
}

// weekStart возвращает понедельник недели, в которую попадает дата.
func weekStart(date time.Time) time.Time {
	d := midnight(date)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// firstMonday возвращает понедельник, совпадающий с началом семестра
// или ближайший после него.
func firstMonday(semesterStart time.Time) time.Time {
	d := midnight(semesterStart)
	offset := (8 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, offset)
}

// Дата приводится к полуночи UTC, чтобы переходы на летнее время
// не ломали недельную арифметику.
func midnight(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
