package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"campusAssistant/calendar"
	"campusAssistant/config"
	"campusAssistant/database"
	"campusAssistant/logger"
	"campusAssistant/timetable"
)

// ── фейковые порты ──

type staticProvider struct {
	doc *timetable.Document
}

func (p staticProvider) Document(_ context.Context) (*timetable.Document, bool) {
	return p.doc, p.doc != nil
}

type fakeUserStore struct {
	notifiable []database.User
	alarmed    []database.User
}

func (s *fakeUserStore) WithNotificationsEnabled() ([]database.User, error) {
	return s.notifiable, nil
}

func (s *fakeUserStore) WithAlarmEnabled() ([]database.User, error) {
	return s.alarmed, nil
}

type fakeDeadlineStore struct {
	deadlines []database.Deadline
}

// DueWithin повторяет контракт репозитория: уже отмеченные дедлайны
// не попадают в выборку, битые даты пропускаются.
func (s *fakeDeadlineStore) DueWithin(window time.Duration) ([]database.Deadline, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	horizon := now.Add(window)

	due := make([]database.Deadline, 0)
	for _, d := range s.deadlines {
		if d.Notified {
			continue
		}
		dueAt, err := database.ParseDueDate(d.DueDate, now)
		if err != nil {
			continue
		}
		if !dueAt.Before(today) && !dueAt.After(horizon) {
			due = append(due, d)
		}
	}
	return due, nil
}

func (s *fakeDeadlineStore) Nearest(userID string, limit int) ([]database.Deadline, error) {
	nearest := make([]database.Deadline, 0)
	for _, d := range s.deadlines {
		if d.UserID == userID && len(nearest) < limit {
			nearest = append(nearest, d)
		}
	}
	return nearest, nil
}

func (s *fakeDeadlineStore) MarkNotified(deadlineID int64) error {
	for i := range s.deadlines {
		if s.deadlines[i].DeadlineID == deadlineID {
			s.deadlines[i].Notified = true
		}
	}
	return nil
}

type fakeEventStore struct {
	events []database.Event
}

func (s *fakeEventStore) Upcoming(_ int) ([]database.Event, error) {
	return s.events, nil
}

type sentMessage struct {
	userID string
	text   string
}

type fakeSender struct {
	sent    []sentMessage
	failFor map[string]bool
}

func (s *fakeSender) SendMessage(_ context.Context, userID, text string) error {
	if s.failFor[userID] {
		return errors.New("delivery rejected")
	}
	s.sent = append(s.sent, sentMessage{userID: userID, text: text})
	return nil
}

// ── сборка ──

func strPtr(v string) *string { return &v }

// Документ, где у группы пары стоят на каждый день обеих чётностей.
func everyDayDoc(group, timeRange string) *timetable.Document {
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

	week := func() timetable.Week {
		w := make(timetable.Week)
		for _, day := range days {
			w[day] = []timetable.Lesson{
				{Time: timeRange, Subject: "Матанализ", Room: "2-301", Teacher: "Иванов И. И."},
			}
		}
		return w
	}

	return &timetable.Document{
		Groups: map[string]timetable.WeekTable{
			group: {Odd: week(), Even: week()},
		},
	}
}

type fixture struct {
	scheduler *Scheduler
	users     *fakeUserStore
	deadlines *fakeDeadlineStore
	events    *fakeEventStore
	sender    *fakeSender
}

func setup(doc *timetable.Document) *fixture {
	cfg := &config.SchedulerConfig{
		MorningTime:      "07:30",
		EveningTime:      "20:00",
		SweepInterval:    6 * time.Hour,
		ReminderWindow:   24 * time.Hour,
		EventHorizonDays: 0,
	}

	cal := calendar.New(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC))
	projector := timetable.NewProjector(staticProvider{doc: doc}, cal)

	f := &fixture{
		users:     &fakeUserStore{},
		deadlines: &fakeDeadlineStore{},
		events:    &fakeEventStore{},
		sender:    &fakeSender{failFor: make(map[string]bool)},
	}
	f.scheduler = New(cfg, logger.GetInstance(), projector, f.users, f.deadlines, f.events, f.sender)
	return f
}

func notifiableUser(id string, group *string) database.User {
	return database.User{UserID: id, GroupName: group, NotificationsEnabled: true}
}

// ── утренний дайджест ──

func TestMorningDigest_ComposesLessonsEventsDeadlines(t *testing.T) {
	f := setup(everyDayDoc("ИС-21", "08:00-09:30"))

	user := notifiableUser("1", strPtr("ИС-21"))
	user.EventsEnabled = true
	f.users.notifiable = []database.User{user}
	f.events.events = []database.Event{{Title: "День открытых дверей", EventDate: "15.09.2025"}}
	f.deadlines.deadlines = []database.Deadline{
		{DeadlineID: 1, UserID: "1", Title: "Курсовая", DueDate: "20.09.2025"},
	}

	f.scheduler.runMorningDigest(context.Background(), time.Date(2025, time.September, 15, 7, 30, 0, 0, time.UTC))

	if len(f.sender.sent) != 1 {
		t.Fatalf("expected 1 digest, got %d", len(f.sender.sent))
	}
	text := f.sender.sent[0].text
	for _, fragment := range []string{"Матанализ", "День открытых дверей", "Курсовая"} {
		if !strings.Contains(text, fragment) {
			t.Errorf("digest must mention %q:\n%s", fragment, text)
		}
	}
}

func TestMorningDigest_NoGroupStillGetsDigest(t *testing.T) {
	f := setup(everyDayDoc("ИС-21", "08:00-09:30"))
	f.users.notifiable = []database.User{notifiableUser("1", nil)}

	f.scheduler.runMorningDigest(context.Background(), time.Now())

	if len(f.sender.sent) != 1 {
		t.Fatalf("user without a group still receives the digest, got %d sends", len(f.sender.sent))
	}
}

func TestMorningDigest_EventsRequireSubscription(t *testing.T) {
	f := setup(everyDayDoc("ИС-21", "08:00-09:30"))
	f.users.notifiable = []database.User{notifiableUser("1", strPtr("ИС-21"))}
	f.events.events = []database.Event{{Title: "День открытых дверей", EventDate: "15.09.2025"}}

	f.scheduler.runMorningDigest(context.Background(), time.Now())

	if strings.Contains(f.sender.sent[0].text, "День открытых дверей") {
		t.Error("events must not appear for a user without the events subscription")
	}
}

func TestMorningDigest_SendFailureDoesNotAbortBatch(t *testing.T) {
	f := setup(everyDayDoc("ИС-21", "08:00-09:30"))
	f.users.notifiable = []database.User{
		notifiableUser("1", strPtr("ИС-21")),
		notifiableUser("2", strPtr("ИС-21")),
	}
	f.sender.failFor["1"] = true

	f.scheduler.runMorningDigest(context.Background(), time.Now())

	if len(f.sender.sent) != 1 || f.sender.sent[0].userID != "2" {
		t.Errorf("second user must still receive the digest: %+v", f.sender.sent)
	}
}

// ── вечерний дайджест ──

func TestEveningDigest_SendsTomorrowsLessons(t *testing.T) {
	f := setup(everyDayDoc("ИС-21", "08:00-09:30"))
	f.users.notifiable = []database.User{notifiableUser("1", strPtr("ИС-21"))}

	f.scheduler.runEveningDigest(context.Background(), time.Date(2025, time.September, 15, 20, 0, 0, 0, time.UTC))

	if len(f.sender.sent) != 1 {
		t.Fatalf("expected 1 evening digest, got %d", len(f.sender.sent))
	}
	if !strings.Contains(f.sender.sent[0].text, "Матанализ") {
		t.Errorf("evening digest must contain tomorrow's lesson:\n%s", f.sender.sent[0].text)
	}
}

func TestEveningDigest_SkipsWhenTomorrowIsFree(t *testing.T) {
	// Пустой датасет: завтра пар нет.
	f := setup(&timetable.Document{Groups: map[string]timetable.WeekTable{"ИС-21": {}}})
	f.users.notifiable = []database.User{notifiableUser("1", strPtr("ИС-21"))}

	f.scheduler.runEveningDigest(context.Background(), time.Now())

	if len(f.sender.sent) != 0 {
		t.Errorf("no message expected when tomorrow has no lessons, got %d", len(f.sender.sent))
	}
}

func TestEveningDigest_SkipsUsersWithoutGroup(t *testing.T) {
	f := setup(everyDayDoc("ИС-21", "08:00-09:30"))
	f.users.notifiable = []database.User{notifiableUser("1", nil)}

	f.scheduler.runEveningDigest(context.Background(), time.Now())

	if len(f.sender.sent) != 0 {
		t.Errorf("evening digest requires a chosen group, got %d sends", len(f.sender.sent))
	}
}

// ── обход дедлайнов ──

func TestDeadlineSweep_SelectsOnceAcrossTwoFirings(t *testing.T) {
	f := setup(nil)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("02.01.2006")
	f.users.notifiable = []database.User{notifiableUser("1", nil)}
	f.deadlines.deadlines = []database.Deadline{
		{DeadlineID: 7, UserID: "1", Title: "Курсовая", DueDate: tomorrow},
	}

	f.scheduler.runDeadlineSweep(context.Background(), time.Now().UTC())
	f.scheduler.runDeadlineSweep(context.Background(), time.Now().UTC())

	if len(f.sender.sent) != 1 {
		t.Fatalf("reminder must fire exactly once across two sweeps, got %d", len(f.sender.sent))
	}
	if !f.deadlines.deadlines[0].Notified {
		t.Error("deadline must be latched after the reminder")
	}
}

func TestDeadlineSweep_SkipsOwnersWithoutNotifications(t *testing.T) {
	f := setup(nil)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("02.01.2006")
	f.users.notifiable = []database.User{} // владелец отключил уведомления
	f.deadlines.deadlines = []database.Deadline{
		{DeadlineID: 7, UserID: "1", Title: "Курсовая", DueDate: tomorrow},
	}

	f.scheduler.runDeadlineSweep(context.Background(), time.Now().UTC())

	if len(f.sender.sent) != 0 {
		t.Errorf("no reminder for muted owners, got %d", len(f.sender.sent))
	}
	if f.deadlines.deadlines[0].Notified {
		t.Error("skipped deadline must not be latched")
	}
}

func TestDeadlineSweep_FailedSendLeavesLatchOpen(t *testing.T) {
	f := setup(nil)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("02.01.2006")
	f.users.notifiable = []database.User{notifiableUser("1", nil)}
	f.deadlines.deadlines = []database.Deadline{
		{DeadlineID: 7, UserID: "1", Title: "Курсовая", DueDate: tomorrow},
	}
	f.sender.failFor["1"] = true

	f.scheduler.runDeadlineSweep(context.Background(), time.Now().UTC())

	if f.deadlines.deadlines[0].Notified {
		t.Error("latch must stay open after a failed send so the next sweep retries")
	}
}

// ── будильник первой пары ──

func TestFirstLessonAlarm_FiresAtExactOffsets(t *testing.T) {
	for _, offset := range []int{15, 5} {
		f := setup(everyDayDoc("ИС-21", "10:00-11:30"))
		user := notifiableUser("1", strPtr("ИС-21"))
		user.AlarmEnabled = true
		f.users.alarmed = []database.User{user}

		now := time.Date(2025, time.September, 15, 9, 60-offset, 0, 0, time.UTC)
		f.scheduler.runFirstLessonAlarm(context.Background(), now)

		if len(f.sender.sent) != 1 {
			t.Fatalf("alarm must fire at %d minutes before the lesson, got %d sends", offset, len(f.sender.sent))
		}
		if !strings.Contains(f.sender.sent[0].text, "Матанализ") {
			t.Errorf("alarm must name the lesson:\n%s", f.sender.sent[0].text)
		}
	}
}

func TestFirstLessonAlarm_SilentOffTheExactMinute(t *testing.T) {
	f := setup(everyDayDoc("ИС-21", "10:00-11:30"))
	user := notifiableUser("1", strPtr("ИС-21"))
	user.AlarmEnabled = true
	f.users.alarmed = []database.User{user}

	for _, minute := range []int{40, 48, 56, 58} {
		now := time.Date(2025, time.September, 15, 9, minute, 0, 0, time.UTC)
		f.scheduler.runFirstLessonAlarm(context.Background(), now)
	}

	if len(f.sender.sent) != 0 {
		t.Errorf("alarm is minute-exact, got %d sends", len(f.sender.sent))
	}
}

func TestFirstLessonAlarm_RespectsDaytimeWindow(t *testing.T) {
	f := setup(everyDayDoc("ИС-21", "04:15-05:45"))
	user := notifiableUser("1", strPtr("ИС-21"))
	user.AlarmEnabled = true
	f.users.alarmed = []database.User{user}

	// Ровно за 15 минут до пары, но до начала окна проверок.
	now := time.Date(2025, time.September, 15, 4, 0, 0, 0, time.UTC)
	f.scheduler.runFirstLessonAlarm(context.Background(), now)

	if len(f.sender.sent) != 0 {
		t.Errorf("alarm must stay silent outside the 05:00-15:00 window, got %d sends", len(f.sender.sent))
	}
}
