package scheduler

import (
	"context"
	"time"

	"campusAssistant/database"
	"campusAssistant/timetable"
)

// runMorningDigest собирает пользователю сводку дня: пары, события
// и ближайшие дедлайны. Сбой на одном пользователе не прерывает рассылку.
func (s *Scheduler) runMorningDigest(ctx context.Context, now time.Time) {
	users, err := s.users.WithNotificationsEnabled()
	if err != nil {
		s.log.Errorf("Morning digest: failed to list users: %v", err)
		return
	}

	for _, user := range users {
		text := s.composeMorningDigest(ctx, user, now)
		if err := s.sender.SendMessage(ctx, user.UserID, text); err != nil {
			s.log.Errorf("Morning digest: send to %s failed: %v", user.UserID, err)
		}
	}

	s.log.Infof("Morning digest dispatched to %d users", len(users))
}

func (s *Scheduler) composeMorningDigest(ctx context.Context, user database.User, now time.Time) string {
	var lessons []timetable.Lesson
	if user.GroupName != nil {
		lessons = s.projector.DayOn(ctx, *user.GroupName, user.Subgroup, now)
	}

	var events []database.Event
	if user.EventsEnabled {
		events, _ = s.events.Upcoming(s.cfg.EventHorizonDays)
	}

	deadlines, err := s.deadlines.Nearest(user.UserID, digestDeadlineLimit)
	if err != nil {
		s.log.Errorf("Morning digest: deadlines for %s failed: %v", user.UserID, err)
	}

	return formatMorningDigest(user.GroupName != nil, lessons, events, deadlines, now)
}

// runEveningDigest присылает завтрашние пары. Если завтра пар нет,
// сообщение не отправляется вовсе.
func (s *Scheduler) runEveningDigest(ctx context.Context, now time.Time) {
	users, err := s.users.WithNotificationsEnabled()
	if err != nil {
		s.log.Errorf("Evening digest: failed to list users: %v", err)
		return
	}

	sent := 0
	tomorrow := now.AddDate(0, 0, 1)

	for _, user := range users {
		if user.GroupName == nil {
			continue
		}

		lessons := s.projector.DayOn(ctx, *user.GroupName, user.Subgroup, tomorrow)
		if len(lessons) == 0 {
			continue
		}

		text := formatEveningDigest(lessons, tomorrow)
		if err := s.sender.SendMessage(ctx, user.UserID, text); err != nil {
			s.log.Errorf("Evening digest: send to %s failed: %v", user.UserID, err)
			continue
		}
		sent++
	}

	s.log.Infof("Evening digest dispatched to %d users", sent)
}

// runDeadlineSweep напоминает о дедлайнах, срок которых попадает в окно
// напоминаний, и взводит защёлку notified. Защёлка ставится только после
// удачной отправки, поэтому доставка at-least-once, но не чаще.
func (s *Scheduler) runDeadlineSweep(ctx context.Context, now time.Time) {
	owners, err := s.notifiableOwners()
	if err != nil {
		s.log.Errorf("Deadline sweep: failed to list users: %v", err)
		return
	}

	due, err := s.deadlines.DueWithin(s.cfg.ReminderWindow)
	if err != nil {
		s.log.Errorf("Deadline sweep: failed to list deadlines: %v", err)
		return
	}

	for _, deadline := range due {
		if _, ok := owners[deadline.UserID]; !ok {
			continue
		}

		dueAt, err := database.ParseDueDate(deadline.DueDate, now)
		if err != nil {
			continue
		}

		text := formatDeadlineReminder(deadline, dueAt, now)
		if err := s.sender.SendMessage(ctx, deadline.UserID, text); err != nil {
			s.log.Errorf("Deadline sweep: send to %s failed: %v", deadline.UserID, err)
			continue
		}

		if err := s.deadlines.MarkNotified(deadline.DeadlineID); err != nil {
			s.log.Errorf("Deadline sweep: failed to latch deadline %d: %v", deadline.DeadlineID, err)
		}
	}
}

// runFirstLessonAlarm предупреждает о первой паре ровно за 15 и за 5 минут.
// Проверка идёт с шагом в пять минут и только днём: совпадение может быть
// пропущено, если процесс в нужную минуту не работал — это принятая
// best-effort гарантия.
func (s *Scheduler) runFirstLessonAlarm(ctx context.Context, now time.Time) {
	if now.Hour() < alarmWindowStartHour || now.Hour() >= alarmWindowEndHour {
		return
	}

	users, err := s.users.WithAlarmEnabled()
	if err != nil {
		s.log.Errorf("First lesson alarm: failed to list users: %v", err)
		return
	}

	for _, user := range users {
		if user.GroupName == nil {
			continue
		}

		lessons := s.projector.DayOn(ctx, *user.GroupName, user.Subgroup, now)
		if len(lessons) == 0 {
			continue
		}

		first := lessons[0]
		minutes, ok := minutesUntil(first, now)
		if !ok {
			continue
		}

		for _, offset := range alarmOffsets {
			if minutes != offset {
				continue
			}
			text := formatFirstLessonAlarm(first, minutes)
			if err := s.sender.SendMessage(ctx, user.UserID, text); err != nil {
				s.log.Errorf("First lesson alarm: send to %s failed: %v", user.UserID, err)
			}
			break
		}
	}
}

func (s *Scheduler) notifiableOwners() (map[string]struct{}, error) {
	users, err := s.users.WithNotificationsEnabled()
	if err != nil {
		return nil, err
	}

	owners := make(map[string]struct{}, len(users))
	for _, user := range users {
		owners[user.UserID] = struct{}{}
	}
	return owners, nil
}

func minutesUntil(lesson timetable.Lesson, now time.Time) (int, bool) {
	clock, err := time.Parse("15:04", timetable.StartClock(lesson.Time))
	if err != nil {
		return 0, false
	}

	start := time.Date(now.Year(), now.Month(), now.Day(),
		clock.Hour(), clock.Minute(), 0, 0, now.Location())

	return int(start.Sub(now.Truncate(time.Minute)).Minutes()), true
}
