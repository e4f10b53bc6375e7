package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration loaded from config.toml.
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Redis        RedisConfig        `toml:"redis"`
	Events       EventsConfig       `toml:"events"`
	Loyalty      LoyaltyConfig      `toml:"loyalty"`
	Booking      BookingConfig      `toml:"booking"`
	Integrations IntegrationsConfig `toml:"integrations"`
	Reminders    RemindersConfig    `toml:"reminders"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// EventsConfig configures the outbox dispatcher: an optional Kafka sink and a
// set of webhook targets notified on every event.
type EventsConfig struct {
	KafkaBrokers        []string `toml:"kafka_brokers"`
	KafkaTopic          string   `toml:"kafka_topic"`
	WebhookTargets      []string `toml:"webhook_targets"`
	PollIntervalSeconds int      `toml:"poll_interval_seconds"`
	BatchSize           int      `toml:"batch_size"`
	WebhookTimeout      int      `toml:"webhook_timeout"`
}

type LoyaltyConfig struct {
	// EnabledDefault is used when the runtime toggle is absent or unreadable.
	EnabledDefault bool `toml:"enabled_default"`
	// PointsPerUnit is the redemption rate: points needed per one currency unit.
	PointsPerUnit int `toml:"points_per_unit"`
}

type BookingConfig struct {
	SlotStepMinutes int `toml:"slot_step_minutes"`
}

// IntegrationsConfig points at the collaborator services. Empty URLs disable
// the corresponding integration.
type IntegrationsConfig struct {
	NotifierURL       string   `toml:"notifier_url"`
	CalendarURL       string   `toml:"calendar_url"`
	CalendarPlatforms []string `toml:"calendar_platforms"`
	Timeout           int      `toml:"timeout"`
}

// RemindersConfig tunes the appointment reminder worker.
type RemindersConfig struct {
	Enabled              bool `toml:"enabled"`
	LeadHours            int  `toml:"lead_hours"`
	SweepIntervalMinutes int  `toml:"sweep_interval_minutes"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Loyalty.PointsPerUnit <= 0 {
		cfg.Loyalty.PointsPerUnit = 10
	}
	if cfg.Booking.SlotStepMinutes <= 0 {
		cfg.Booking.SlotStepMinutes = 30
	}
	if cfg.Events.PollIntervalSeconds <= 0 {
		cfg.Events.PollIntervalSeconds = 2
	}
	if cfg.Events.BatchSize <= 0 {
		cfg.Events.BatchSize = 50
	}
	if cfg.Events.WebhookTimeout <= 0 {
		cfg.Events.WebhookTimeout = 10
	}
	if cfg.Integrations.Timeout <= 0 {
		cfg.Integrations.Timeout = 10
	}
	if cfg.Reminders.LeadHours <= 0 {
		cfg.Reminders.LeadHours = 24
	}
	if cfg.Reminders.SweepIntervalMinutes <= 0 {
		cfg.Reminders.SweepIntervalMinutes = 15
	}

	return &cfg, nil
}
