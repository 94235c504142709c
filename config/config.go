package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"campusAssistant/logger"
)

type Config struct {
	LogLevel  logger.LogLevel `env:"LOG_LEVEL" envDefault:"1"`
	LogDir    string          `env:"LOG_DIR" envDefault:"./logs"`
	Database  DatabaseConfig  `envPrefix:"DATABASE_"`
	MaxAPI    MaxConfig       `envPrefix:"MAX_"`
	Timetable TimetableConfig `envPrefix:"TIMETABLE_"`
	Calendar  CalendarConfig  `envPrefix:"CALENDAR_"`
	Scheduler SchedulerConfig `envPrefix:"SCHEDULER_"`
}

type MaxConfig struct {
	Token string `env:"TOKEN"`
}

type DatabaseConfig struct {
	URI string `env:"URI"`
}

type TimetableConfig struct {
	Path     string        `env:"PATH" envDefault:"./data/timetable.json"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	MinIO    MinIOConfig   `envPrefix:"MINIO_"`
}

// MinIOConfig — необязательный источник датасета в объектном хранилище.
// Пустой endpoint означает чтение из локального файла.
type MinIOConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"campus-datasets"`
	Object    string `env:"OBJECT" envDefault:"timetable.json"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

type CalendarConfig struct {
	Path string `env:"PATH" envDefault:"./data/calendar.json"`
}

type SchedulerConfig struct {
	MorningTime      string        `env:"MORNING_TIME" envDefault:"07:30"`
	EveningTime      string        `env:"EVENING_TIME" envDefault:"20:00"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL" envDefault:"6h"`
	ReminderWindow   time.Duration `env:"REMINDER_WINDOW" envDefault:"24h"`
	EventHorizonDays int           `env:"EVENT_HORIZON_DAYS" envDefault:"0"`
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
