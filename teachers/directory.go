package teachers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"campusAssistant/timetable"
)

// Directory — виртуальный справочник преподавателей. В датасете нет
// отдельной сущности «преподаватель»: имена зашиты свободным текстом
// в занятиях, справочник восстанавливает их обходом всех групп.
type Directory struct {
	provider timetable.DocumentProvider
}

func NewDirectory(provider timetable.DocumentProvider) *Directory {
	return &Directory{provider: provider}
}

// ExtractCandidates собирает все непустые поля преподавателя по всем
// группам и ячейкам сетки. Дешёвый и заведомо широкий проход:
// фильтрация и нормализация происходят отдельно.
func ExtractCandidates(doc *timetable.Document) map[string]struct{} {
	candidates := make(map[string]struct{})
	for _, table := range timetable.AllGroupTables(doc) {
		for _, week := range []timetable.Week{table.Odd, table.Even} {
			for _, lessons := range week {
				for _, lesson := range lessons {
					raw := strings.TrimSpace(lesson.Teacher)
					if raw != "" {
						candidates[raw] = struct{}{}
					}
				}
			}
		}
	}
	return candidates
}

// All возвращает отсортированный список канонических имён.
// Разные написания одного преподавателя схлопываются нормализацией.
func (d *Directory) All(ctx context.Context) []string {
	doc, ok := d.provider.Document(ctx)
	if !ok {
		return []string{}
	}

	unique := make(map[string]struct{})
	for candidate := range ExtractCandidates(doc) {
		if !IsPlausibleName(candidate) {
			continue
		}
		if name := Normalize(candidate); name != "" {
			unique[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Search ищет по подстроке без учёта регистра. Пустой запрос
// возвращает пустой результат, а не весь справочник.
func (d *Directory) Search(ctx context.Context, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []string{}
	}

	matched := make([]string, 0)
	for _, name := range d.All(ctx) {
		if strings.Contains(strings.ToLower(name), query) {
			matched = append(matched, name)
		}
	}
	return matched
}

// WeekTable синтезирует сводную сетку преподавателя обходом всех групп.
// Предмет каждого найденного занятия помечается именем группы, иначе
// сводное расписание нельзя было бы разобрать.
func (d *Directory) WeekTable(ctx context.Context, teacherName string) timetable.WeekTable {
	result := timetable.WeekTable{
		Odd:  make(timetable.Week),
		Even: make(timetable.Week),
	}

	doc, ok := d.provider.Document(ctx)
	if !ok {
		return result
	}

	target := Normalize(teacherName)

	for groupName, table := range timetable.AllGroupTables(doc) {
		collectTeacherLessons(result.Odd, table.Odd, groupName, teacherName, target)
		collectTeacherLessons(result.Even, table.Even, groupName, teacherName, target)
	}

	for _, week := range []timetable.Week{result.Odd, result.Even} {
		for _, lessons := range week {
			timetable.SortByStart(lessons)
		}
	}

	return result
}

func collectTeacherLessons(dst timetable.Week, src timetable.Week, groupName, rawQuery, target string) {
	for day, lessons := range src {
		for _, lesson := range lessons {
			if !lessonBelongsTo(lesson, rawQuery, target) {
				continue
			}
			copied := lesson
			copied.Subject = fmt.Sprintf("%s (%s)", lesson.Subject, groupName)
			dst[day] = append(dst[day], copied)
		}
	}
}

// Занятие принадлежит преподавателю, если нормализованное поле совпадает
// с нормализованным запросом либо сырое поле совпадает с запросом дословно
// (покрывает записи, которые фильтр правдоподобия отсеял бы).
func lessonBelongsTo(lesson timetable.Lesson, rawQuery, target string) bool {
	raw := strings.TrimSpace(lesson.Teacher)
	if raw == "" {
		return false
	}
	if raw == rawQuery {
		return true
	}
	return target != "" && Normalize(raw) == target
}
