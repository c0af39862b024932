package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	HTTPPort    string `env:"HTTP_PORT"    envDefault:"8080"`
	LogFormat   string `env:"LOG_FORMAT"   envDefault:"json"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	// ProfileSeedFile is a JSON array of profiles written to the store at
	// start-up. The memory driver has no other source of profiles.
	ProfileSeedFile string `env:"PROFILE_SEED_FILE"`

	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	RedisAddr string `env:"REDIS_ADDR"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"     envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	KafkaBrokers     []string `env:"KAFKA_BROKERS"      envSeparator:","`
	KafkaStatusTopic string   `env:"KAFKA_STATUS_TOPIC" envDefault:"aid.status-changed"`

	MatcherFallbackToUnapproved bool `env:"MATCHER_FALLBACK_TO_UNAPPROVED" envDefault:"true"`

	DispatchWorkers     int           `env:"DISPATCH_WORKERS"      envDefault:"4"`
	DispatchQueueSize   int           `env:"DISPATCH_QUEUE_SIZE"   envDefault:"256"`
	EmailAttempts       int           `env:"EMAIL_ATTEMPTS"        envDefault:"2"`
	EmailRetryBackoff   time.Duration `env:"EMAIL_RETRY_BACKOFF"   envDefault:"2s"`
	EmailAttemptTimeout time.Duration `env:"EMAIL_ATTEMPT_TIMEOUT" envDefault:"10s"`
	PushTimeout         time.Duration `env:"PUSH_TIMEOUT"          envDefault:"5s"`

	ReminderSchedule string        `env:"REMINDER_SCHEDULE" envDefault:"0 0 * * * *"`
	ReminderAfter    time.Duration `env:"REMINDER_AFTER"    envDefault:"24h"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the process cannot start with.
func (c Config) Validate() error {
	var problems []error
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DBUser == "" || c.DBName == "" {
			problems = append(problems, errors.New("DB_USER and DB_NAME are required for the postgres store"))
		}
	case StoreDriverMemory:
	default:
		problems = append(problems, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		problems = append(problems, errors.New("SMTP_FROM is required when SMTP_HOST is set"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaStatusTopic == "" {
		problems = append(problems, errors.New("KAFKA_STATUS_TOPIC is required when KAFKA_BROKERS is set"))
	}
	if c.ReminderAfter <= 0 {
		problems = append(problems, errors.New("REMINDER_AFTER must be positive"))
	}
	return errors.Join(problems...)
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
