package timetable

import (
	"context"
	"time"

	"campusAssistant/calendar"
)

// Projector отвечает на запросы «что у группы сегодня/завтра/на неделе».
type Projector struct {
	provider DocumentProvider
	cal      calendar.Calendar
}

func NewProjector(provider DocumentProvider, cal calendar.Calendar) *Projector {
	return &Projector{provider: provider, cal: cal}
}

func (p *Projector) Today(ctx context.Context, group string, subgroup *int) []Lesson {
	return p.DayOn(ctx, group, subgroup, time.Now())
}

func (p *Projector) Tomorrow(ctx context.Context, group string, subgroup *int) []Lesson {
	return p.DayOn(ctx, group, subgroup, time.Now().AddDate(0, 0, 1))
}

// DayOn возвращает занятия группы на произвольную дату.
// День без занятий — это выходной, а не ошибка.
func (p *Projector) DayOn(ctx context.Context, group string, subgroup *int, date time.Time) []Lesson {
	table, ok := p.groupTable(ctx, group)
	if !ok {
		return []Lesson{}
	}
	return DayLessons(table, date, p.cal, subgroup)
}

func (p *Projector) CurrentWeek(ctx context.Context, group string, subgroup *int) []DaySchedule {
	return p.WeekFrom(ctx, group, subgroup, time.Now())
}

func (p *Projector) NextWeek(ctx context.Context, group string, subgroup *int) []DaySchedule {
	return p.WeekFrom(ctx, group, subgroup, time.Now().AddDate(0, 0, 7))
}

// WeekFrom возвращает неделю, в которую попадает дата, с понедельника.
func (p *Projector) WeekFrom(ctx context.Context, group string, subgroup *int, date time.Time) []DaySchedule {
	table, ok := p.groupTable(ctx, group)
	if !ok {
		return emptyWeek(mondayOf(date))
	}
	return WeekLessons(table, mondayOf(date), p.cal, subgroup)
}

// WeekNumber и Parity отдаются наружу для справочных запросов.
func (p *Projector) WeekNumber(date time.Time) int {
	return p.cal.WeekNumber(date)
}

func (p *Projector) Parity(date time.Time) calendar.Parity {
	return p.cal.Parity(date)
}

func (p *Projector) groupTable(ctx context.Context, group string) (WeekTable, bool) {
	doc, ok := p.provider.Document(ctx)
	if !ok {
		return WeekTable{}, false
	}
	return FindGroupTable(doc, group)
}

func mondayOf(date time.Time) time.Time {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func emptyWeek(monday time.Time) []DaySchedule {
	days := make([]DaySchedule, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, DaySchedule{Date: monday.AddDate(0, 0, i), Lessons: []Lesson{}})
	}
	return days
}
