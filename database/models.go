package database

import (
	"time"
)

type User struct {
	UserID               string    `db:"user_id" json:"user_id"`
	Institution          *string   `db:"institution" json:"institution"`
	GroupName            *string   `db:"group_name" json:"group_name"`
	Subgroup             *int      `db:"subgroup" json:"subgroup"`
	NotificationsEnabled bool      `db:"notifications_enabled" json:"notifications_enabled"`
	EventsEnabled        bool      `db:"events_enabled" json:"events_enabled"`
	AlarmEnabled         bool      `db:"alarm_enabled" json:"alarm_enabled"`
	State                *string   `db:"state" json:"state"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
}

type Deadline struct {
	DeadlineID  int64     `db:"deadline_id" json:"deadline_id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	DueDate     string    `db:"due_date" json:"due_date"`
	Notified    bool      `db:"notified" json:"notified"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Event struct {
	EventID     int64   `db:"event_id" json:"event_id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	EventDate   string  `db:"event_date" json:"event_date"`
}

type FavoriteTeacher struct {
	UserID      string `db:"user_id" json:"user_id"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
}
