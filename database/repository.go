package database

import (
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateIfAbsent заводит пользователя при первом обращении.
// Повторный вызов ничего не меняет.
func (r *UserRepository) CreateIfAbsent(userID string) error {
	_, err := r.db.Exec(`
        INSERT INTO users (user_id, created_at)
        VALUES ($1, NOW())
        ON CONFLICT (user_id) DO NOTHING`, userID)
	return err
}

func (r *UserRepository) GetByID(userID string) (*User, error) {
	user := new(User)
	err := r.db.Get(user, `SELECT * FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) SetInstitution(userID string, institution string) error {
	_, err := r.db.Exec(`UPDATE users SET institution = $1 WHERE user_id = $2`, institution, userID)
	return err
}

func (r *UserRepository) SetGroup(userID string, groupName string) error {
	_, err := r.db.Exec(`UPDATE users SET group_name = $1 WHERE user_id = $2`, groupName, userID)
	return err
}

// SetSubgroup — nil снимает фильтр, пользователь видит все подгруппы.
func (r *UserRepository) SetSubgroup(userID string, subgroup *int) error {
	_, err := r.db.Exec(`UPDATE users SET subgroup = $1 WHERE user_id = $2`, subgroup, userID)
	return err
}

func (r *UserRepository) SetNotificationsEnabled(userID string, enabled bool) error {
	_, err := r.db.Exec(`UPDATE users SET notifications_enabled = $1 WHERE user_id = $2`, enabled, userID)
	return err
}

func (r *UserRepository) SetEventsEnabled(userID string, enabled bool) error {
	_, err := r.db.Exec(`UPDATE users SET events_enabled = $1 WHERE user_id = $2`, enabled, userID)
	return err
}

func (r *UserRepository) SetAlarmEnabled(userID string, enabled bool) error {
	_, err := r.db.Exec(`UPDATE users SET alarm_enabled = $1 WHERE user_id = $2`, enabled, userID)
	return err
}

func (r *UserRepository) SetState(userID string, state *string) error {
	_, err := r.db.Exec(`UPDATE users SET state = $1 WHERE user_id = $2`, state, userID)
	return err
}

func (r *UserRepository) WithNotificationsEnabled() ([]User, error) {
	var users []User
	err := r.db.Select(&users, `SELECT * FROM users WHERE notifications_enabled = TRUE`)
	return users, err
}

func (r *UserRepository) WithAlarmEnabled() ([]User, error) {
	var users []User
	err := r.db.Select(&users, `
        SELECT * FROM users
        WHERE alarm_enabled = TRUE AND notifications_enabled = TRUE AND group_name IS NOT NULL`)
	return users, err
}

type DeadlineRepository struct {
	db *sqlx.DB
}

func NewDeadlineRepository(db *sqlx.DB) *DeadlineRepository {
	return &DeadlineRepository{db: db}
}

func (r *DeadlineRepository) Create(userID, title string, description *string, dueDate string) error {
	_, err := r.db.Exec(`
        INSERT INTO deadlines (user_id, title, description, due_date, notified, created_at)
        VALUES ($1, $2, $3, $4, FALSE, NOW())`,
		userID, title, description, dueDate)
	return err
}

func (r *DeadlineRepository) ListByUser(userID string) ([]Deadline, error) {
	var deadlines []Deadline
	err := r.db.Select(&deadlines, `
        SELECT * FROM deadlines WHERE user_id = $1 ORDER BY created_at`, userID)
	return deadlines, err
}

func (r *DeadlineRepository) Delete(deadlineID int64) error {
	_, err := r.db.Exec(`DELETE FROM deadlines WHERE deadline_id = $1`, deadlineID)
	return err
}

// DueWithin возвращает ещё не отмеченные дедлайны, срок которых наступает
// в ближайшее окно. Дата хранится строкой, поэтому фильтрация по сроку
// выполняется здесь, а не в SQL; нечитаемые даты пропускаются.
func (r *DeadlineRepository) DueWithin(window time.Duration) ([]Deadline, error) {
	var pending []Deadline
	err := r.db.Select(&pending, `SELECT * FROM deadlines WHERE notified = FALSE`)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	horizon := now.Add(window)

	due := make([]Deadline, 0)
	for _, deadline := range pending {
		dueAt, err := ParseDueDate(deadline.DueDate, now)
		if err != nil {
			continue
		}
		if !dueAt.Before(today) && !dueAt.After(horizon) {
			due = append(due, deadline)
		}
	}

	return due, nil
}

// Nearest возвращает до limit ближайших актуальных дедлайнов пользователя.
func (r *DeadlineRepository) Nearest(userID string, limit int) ([]Deadline, error) {
	deadlines, err := r.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	type dated struct {
		deadline Deadline
		dueAt    time.Time
	}

	active := make([]dated, 0, len(deadlines))
	for _, deadline := range deadlines {
		dueAt, err := ParseDueDate(deadline.DueDate, now)
		if err != nil {
			continue
		}
		if dueAt.Before(today) {
			continue
		}
		active = append(active, dated{deadline: deadline, dueAt: dueAt})
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].dueAt.Before(active[j].dueAt)
	})

	if len(active) > limit {
		active = active[:limit]
	}

	nearest := make([]Deadline, 0, len(active))
	for _, d := range active {
		nearest = append(nearest, d.deadline)
	}
	return nearest, nil
}

// MarkNotified — одноразовая защёлка: второй рассылки по дедлайну не бывает.
func (r *DeadlineRepository) MarkNotified(deadlineID int64) error {
	_, err := r.db.Exec(`UPDATE deadlines SET notified = TRUE WHERE deadline_id = $1`, deadlineID)
	return err
}

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Upcoming возвращает события с датой в интервале [сегодня, сегодня+days].
// Записи с нечитаемой датой пропускаются.
func (r *EventRepository) Upcoming(days int) ([]Event, error) {
	var events []Event
	err := r.db.Select(&events, `SELECT * FROM events`)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	horizon := today.AddDate(0, 0, days)

	upcoming := make([]Event, 0)
	for _, event := range events {
		date, err := ParseEventDate(event.EventDate)
		if err != nil {
			continue
		}
		if date.Before(today) || date.After(horizon) {
			continue
		}
		upcoming = append(upcoming, event)
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].EventDate < upcoming[j].EventDate
	})
	return upcoming, nil
}

type FavoriteTeacherRepository struct {
	db *sqlx.DB
}

func NewFavoriteTeacherRepository(db *sqlx.DB) *FavoriteTeacherRepository {
	return &FavoriteTeacherRepository{db: db}
}

func (r *FavoriteTeacherRepository) Add(userID, teacherName string) error {
	_, err := r.db.Exec(`
        INSERT INTO favorite_teachers (user_id, teacher_name)
        VALUES ($1, $2)
        ON CONFLICT (user_id, teacher_name) DO NOTHING`, userID, teacherName)
	return err
}

func (r *FavoriteTeacherRepository) Remove(userID, teacherName string) error {
	_, err := r.db.Exec(`
        DELETE FROM favorite_teachers
        WHERE user_id = $1 AND teacher_name = $2`, userID, teacherName)
	return err
}

func (r *FavoriteTeacherRepository) Exists(userID, teacherName string) (bool, error) {
	var count int
	err := r.db.Get(&count, `
        SELECT COUNT(*) FROM favorite_teachers
        WHERE user_id = $1 AND teacher_name = $2`, userID, teacherName)
	return count > 0, err
}

func (r *FavoriteTeacherRepository) List(userID string) ([]string, error) {
	var names []string
	err := r.db.Select(&names, `
        SELECT teacher_name FROM favorite_teachers
        WHERE user_id = $1 ORDER BY teacher_name`, userID)
	return names, err
}
