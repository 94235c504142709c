package scheduler

import (
	"fmt"
	"strings"
	"time"

	"campusAssistant/database"
	"campusAssistant/timetable"
)

const (
	morningGreeting  = "🌅 Доброе утро!"
	noLessonsToday   = "Сегодня пар нет 🎉"
	noGroupChosen    = "Группа не выбрана — расписание недоступно."
	lessonsHeader    = "📚 Пары на сегодня:"
	eventsHeader     = "🎭 События сегодня:"
	deadlinesHeader  = "⏳ Ближайшие дедлайны:"
	tomorrowHeader   = "🌙 Завтра (%s) у тебя %d пар(ы):"
	deadlineReminder = "⏰ Напоминание о дедлайне!\n\n**%s**%s\nСрок: %s (%s)"
	firstLessonAlarm = "🔔 Первая пара через %d мин.!\n\n**%s**%s\n⏰ %s"

	dateFormat = "02.01.2006"
)

func formatMorningDigest(hasGroup bool, lessons []timetable.Lesson, events []database.Event, deadlines []database.Deadline, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(morningGreeting)
	sb.WriteString("\n\n")

	switch {
	case !hasGroup:
		sb.WriteString(noGroupChosen)
	case len(lessons) == 0:
		sb.WriteString(noLessonsToday)
	default:
		sb.WriteString(lessonsHeader)
		sb.WriteString("\n")
		appendLessons(&sb, lessons)
	}

	if len(events) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(eventsHeader)
		for _, event := range events {
			fmt.Fprintf(&sb, "\n• %s (%s)", event.Title, event.EventDate)
		}
	}

	if len(deadlines) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(deadlinesHeader)
		for _, deadline := range deadlines {
			fmt.Fprintf(&sb, "\n• %s — %s", deadline.Title, deadline.DueDate)
		}
	}

	return strings.TrimSpace(sb.String())
}

func formatEveningDigest(lessons []timetable.Lesson, tomorrow time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, tomorrowHeader, tomorrow.Format(dateFormat), len(lessons))
	sb.WriteString("\n")
	appendLessons(&sb, lessons)
	return strings.TrimSpace(sb.String())
}

func appendLessons(sb *strings.Builder, lessons []timetable.Lesson) {
	for i, lesson := range lessons {
		fmt.Fprintf(sb, "\n%d. **%s**", i+1, lesson.Subject)
		if lesson.Type != "" {
			fmt.Fprintf(sb, " (%s)", lesson.Type)
		}
		if lesson.Teacher != "" {
			fmt.Fprintf(sb, "\n   👨‍🏫 %s", lesson.Teacher)
		}
		if lesson.Room != "" {
			fmt.Fprintf(sb, "\n   🏫 %s", lesson.Room)
		}
		fmt.Fprintf(sb, "\n   ⏰ %s", lesson.Time)
	}
}

func formatDeadlineReminder(deadline database.Deadline, dueAt, now time.Time) string {
	description := ""
	if deadline.Description != nil && *deadline.Description != "" {
		description = "\n" + *deadline.Description
	}

	return fmt.Sprintf(deadlineReminder,
		deadline.Title, description, deadline.DueDate, remainingText(dueAt, now))
}

// remainingText показывает остаток в часах, когда срок ближе двух суток.
func remainingText(dueAt, now time.Time) string {
	hours := int(dueAt.Sub(now).Hours())
	if hours < 0 {
		hours = 0
	}
	if hours < 48 {
		return fmt.Sprintf("осталось ~%d ч.", hours)
	}
	return fmt.Sprintf("осталось %d дн.", hours/24)
}

func formatFirstLessonAlarm(lesson timetable.Lesson, minutes int) string {
	details := ""
	if lesson.Room != "" {
		details += "\n🏫 " + lesson.Room
	}
	if lesson.Teacher != "" {
		details += "\n👨‍🏫 " + lesson.Teacher
	}

	return fmt.Sprintf(firstLessonAlarm, minutes, lesson.Subject, details, lesson.Time)
}
