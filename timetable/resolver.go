package timetable

import (
	"sort"
	"strings"
	"time"

	"campusAssistant/calendar"
)

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// groupExtractor достаёт сетку группы из одной исторической формы документа.
type groupExtractor func(doc *Document, group string) (WeekTable, bool)

// Порядок фиксирован: полное дерево, затем дерево от факультетов,
// затем плоская карта групп.
var extractors = []groupExtractor{
	extractFromInstitutions,
	extractFromFaculties,
	extractFromFlatGroups,
}

// FindGroupTable ищет сетку группы по точному имени во всех формах документа.
// Отсутствие группы — штатная ситуация (группу переименовали или убрали),
// вызывающий код показывает пустой день.
func FindGroupTable(doc *Document, group string) (WeekTable, bool) {
	if doc == nil {
		return WeekTable{}, false
	}
	for _, extract := range extractors {
		if table, ok := extract(doc, group); ok {
			return table, true
		}
	}
	return WeekTable{}, false
}

func extractFromInstitutions(doc *Document, group string) (WeekTable, bool) {
	for _, inst := range doc.Institutions {
		if table, ok := searchFaculties(inst.Faculties, group); ok {
			return table, true
		}
	}
	return WeekTable{}, false
}

func extractFromFaculties(doc *Document, group string) (WeekTable, bool) {
	return searchFaculties(doc.Faculties, group)
}

func extractFromFlatGroups(doc *Document, group string) (WeekTable, bool) {
	table, ok := doc.Groups[group]
	return table, ok
}

func searchFaculties(faculties map[string]Faculty, group string) (WeekTable, bool) {
	for _, fac := range faculties {
		for _, format := range fac.Formats {
			for _, degree := range format.Degrees {
				for _, course := range degree.Courses {
					if table, ok := course.Groups[group]; ok {
						return table, true
					}
				}
			}
		}
	}
	return WeekTable{}, false
}

// AllGroupTables собирает сетки всех групп из всех форм документа.
// Используется справочником преподавателей для сквозного обхода.
func AllGroupTables(doc *Document) map[string]WeekTable {
	tables := make(map[string]WeekTable)
	if doc == nil {
		return tables
	}

	collect := func(groups map[string]WeekTable) {
		for name, table := range groups {
			if _, seen := tables[name]; !seen {
				tables[name] = table
			}
		}
	}

	for _, inst := range doc.Institutions {
		for _, fac := range inst.Faculties {
			collectFaculty(fac, collect)
		}
	}
	for _, fac := range doc.Faculties {
		collectFaculty(fac, collect)
	}
	collect(doc.Groups)

	return tables
}

func collectFaculty(fac Faculty, collect func(map[string]WeekTable)) {
	for _, format := range fac.Formats {
		for _, degree := range format.Degrees {
			for _, course := range degree.Courses {
				collect(course.Groups)
			}
		}
	}
}

// DayLessons возвращает занятия группы на дату с учётом чётности недели,
// номера недели и подгруппы. Нулевая подгруппа вызывающего означает
// «показать все подгруппы».
func DayLessons(table WeekTable, date time.Time, cal calendar.Calendar, subgroup *int) []Lesson {
	week := table.Odd
	if cal.Parity(date) == calendar.ParityEven {
		week = table.Even
	}

	weekNumber := cal.WeekNumber(date)
	lessons := make([]Lesson, 0)

	for _, lesson := range week[weekdayKeys[date.Weekday()]] {
		if !matchesSubgroup(lesson, subgroup) {
			continue
		}
		if !occursOnWeek(lesson, weekNumber) {
			continue
		}
		lessons = append(lessons, applySubstitution(lesson, date))
	}

	SortByStart(lessons)
	return lessons
}

// DaySchedule — занятия одного календарного дня.
type DaySchedule struct {
	Date    time.Time
	Lessons []Lesson
}

// WeekLessons возвращает семь дней подряд начиная с startDate.
func WeekLessons(table WeekTable, startDate time.Time, cal calendar.Calendar, subgroup *int) []DaySchedule {
	days := make([]DaySchedule, 0, 7)
	for i := 0; i < 7; i++ {
		date := startDate.AddDate(0, 0, i)
		days = append(days, DaySchedule{
			Date:    date,
			Lessons: DayLessons(table, date, cal, subgroup),
		})
	}
	return days
}

func matchesSubgroup(lesson Lesson, subgroup *int) bool {
	if lesson.Subgroup == nil || subgroup == nil {
		return true
	}
	return *lesson.Subgroup == *subgroup
}

// occursOnWeek учитывает явный список недель занятия.
// Пустой список означает «каждую неделю своей чётности».
func occursOnWeek(lesson Lesson, weekNumber int) bool {
	if len(lesson.Weeks) == 0 {
		return true
	}
	for _, w := range lesson.Weeks {
		if w == weekNumber {
			return true
		}
	}
	return false
}

// applySubstitution подставляет разовую замену, назначенную на дату.
func applySubstitution(lesson Lesson, date time.Time) Lesson {
	key := date.Format("02.01.2006")
	for _, sub := range lesson.Substitutions {
		if sub.Date != key {
			continue
		}
		if sub.Teacher != "" {
			lesson.Teacher = sub.Teacher
		}
		if sub.Room != "" {
			lesson.Room = sub.Room
		}
		if sub.Note != "" {
			lesson.Subject = lesson.Subject + " — " + sub.Note
		}
		break
	}
	return lesson
}

// SortByStart сортирует занятия по началу пары. Времена записаны
// как "HH:MM-HH:MM" с ведущими нулями, поэтому достаточно
// лексикографического сравнения префикса до первого дефиса.
func SortByStart(lessons []Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		return startKey(lessons[i].Time) < startKey(lessons[j].Time)
	})
}

// StartClock возвращает время начала пары ("HH:MM") из диапазона "HH:MM-HH:MM".
func StartClock(timeRange string) string {
	return startKey(timeRange)
}

func startKey(timeRange string) string {
	if idx := strings.IndexAny(timeRange, "-–"); idx >= 0 {
		return strings.TrimSpace(timeRange[:idx])
	}
	return strings.TrimSpace(timeRange)
}
