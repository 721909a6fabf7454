package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StorageConfig selects the durable key-value backend the appointment
// collection persists to.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // file | sqlite | postgres | redis | memory

	// file backend
	DataDir string `mapstructure:"data_dir"`

	// sqlite backend
	SQLitePath string `mapstructure:"sqlite_path"`

	// postgres backend
	Postgres PostgresConfig `mapstructure:"postgres"`

	// redis backend
	RedisURL string `mapstructure:"redis_url"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// EventsConfig selects the broker lifecycle events go to.
type EventsConfig struct {
	Backend      string   `mapstructure:"backend"` // none | redis | kafka
	RedisURL     string   `mapstructure:"redis_url"`
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type ReminderConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// WorkerConfig applies to the standalone worker binary only.
type WorkerConfig struct {
	MetricsPort int `mapstructure:"metrics_port"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Events    EventsConfig    `mapstructure:"events"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Reminder  ReminderConfig  `mapstructure:"reminder"`
	Worker    WorkerConfig    `mapstructure:"worker"`
}

// envOverrides are the environment knobs that take precedence over the
// config file, in the FATIMA_ namespace.
type envOverrides struct {
	Port           int    `envconfig:"PORT"`
	StorageBackend string `envconfig:"STORAGE_BACKEND"`
	DataDir        string `envconfig:"DATA_DIR"`
	RedisURL       string `envconfig:"REDIS_URL"`
}

// Load reads config.yml from the usual lookup paths, applies defaults,
// then applies environment overrides.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Defaults alone are a valid configuration.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("FATIMA", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}
	if env.StorageBackend != "" {
		cfg.Storage.Backend = env.StorageBackend
	}
	if env.DataDir != "" {
		cfg.Storage.DataDir = env.DataDir
	}
	if env.RedisURL != "" {
		cfg.Storage.RedisURL = env.RedisURL
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("storage.data_dir", "./data")
	viper.SetDefault("storage.sqlite_path", "./data/fatima.db")
	viper.SetDefault("events.backend", "none")
	viper.SetDefault("rate_limit.rps", 50)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("reminder.poll_interval", "1h")
	viper.SetDefault("worker.metrics_port", 9091)
}
