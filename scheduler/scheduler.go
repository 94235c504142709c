package scheduler

import (
	"context"
	"fmt"
	"time"

	"campusAssistant/config"
	"campusAssistant/logger"
	"campusAssistant/timetable"
)

const (
	alarmCheckInterval   = 5 * time.Minute
	alarmWindowStartHour = 5
	alarmWindowEndHour   = 15
	digestDeadlineLimit  = 3
)

// За сколько минут до первой пары срабатывает будильник.
var alarmOffsets = []int{15, 5}

// Scheduler запускает четыре периодических рассылки: утренний и вечерний
// дайджесты, обход дедлайнов и будильник первой пары. Триггеры независимы,
// общего состояния между ними нет; единственная запись в хранилище —
// защёлка notified на дедлайне.
type Scheduler struct {
	cfg       *config.SchedulerConfig
	log       *logger.Logger
	projector *timetable.Projector
	users     UserStore
	deadlines DeadlineStore
	events    EventStore
	sender    Sender
}

func New(
	cfg *config.SchedulerConfig,
	log *logger.Logger,
	projector *timetable.Projector,
	users UserStore,
	deadlines DeadlineStore,
	events EventStore,
	sender Sender,
) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		log:       log,
		projector: projector,
		users:     users,
		deadlines: deadlines,
		events:    events,
		sender:    sender,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.runDaily(ctx, s.cfg.MorningTime, s.runMorningDigest)
	go s.runDaily(ctx, s.cfg.EveningTime, s.runEveningDigest)
	go s.runEvery(ctx, s.cfg.SweepInterval, s.runDeadlineSweep)
	go s.runEvery(ctx, alarmCheckInterval, s.runFirstLessonAlarm)

	s.log.Infof("Scheduler started: morning=%s evening=%s sweep=%s",
		s.cfg.MorningTime, s.cfg.EveningTime, s.cfg.SweepInterval)
}

// runDaily срабатывает раз в сутки при совпадении часа и минуты.
// Минутный тикер гарантирует не более одного совпадения.
func (s *Scheduler) runDaily(ctx context.Context, clock string, job func(context.Context, time.Time)) {
	hour, minute, err := parseClock(clock)
	if err != nil {
		s.log.Errorf("Bad trigger time %q: %v", clock, err)
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			if now.Hour() == hour && now.Minute() == minute {
				job(ctx, now)
			}
		}
	}
}

func (s *Scheduler) runEvery(ctx context.Context, interval time.Duration, job func(context.Context, time.Time)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job(ctx, time.Now())
		}
	}
}

func parseClock(clock string) (hour, minute int, err error) {
	if _, err := time.Parse("15:04", clock); err != nil {
		return 0, 0, err
	}
	fmt.Sscanf(clock, "%d:%d", &hour, &minute)
	return hour, minute, nil
}
