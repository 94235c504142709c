package scheduler

import (
	"context"
	"time"

	"campusAssistant/database"
)

// Sender — исходящий канал доставки сообщений. Ошибка отправки не фатальна:
// она логируется, и рассылка продолжается со следующего получателя.
type Sender interface {
	SendMessage(ctx context.Context, userID string, text string) error
}

type UserStore interface {
	WithNotificationsEnabled() ([]database.User, error)
	WithAlarmEnabled() ([]database.User, error)
}

type DeadlineStore interface {
	DueWithin(window time.Duration) ([]database.Deadline, error)
	Nearest(userID string, limit int) ([]database.Deadline, error)
	MarkNotified(deadlineID int64) error
}

type EventStore interface {
	Upcoming(days int) ([]database.Event, error)
}
