package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	Booking       BookingConfig       `toml:"booking"`
	Admin         AdminConfig         `toml:"admin"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int  `toml:"http_port"`
	ReadTimeout     int  `toml:"read_timeout"`
	WriteTimeout    int  `toml:"write_timeout"`
	IdleTimeout     int  `toml:"idle_timeout"`
	ShutdownTimeout int  `toml:"shutdown_timeout"`
	TrustProxy      bool `toml:"trust_proxy"` // брать адрес клиента из X-Forwarded-For
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
	TxMaxRetries    int    `toml:"tx_max_retries"`
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig параметры redis для кэша и ограничения попыток.
// Пустой адрес отключает кэш, ограничение попыток работает в памяти процесса.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	CacheTTL int    `toml:"cache_ttl"` // секунды
	Prefix   string `toml:"prefix"`
}

// Enabled сообщает, настроен ли redis
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// BookingConfig параметры бронирования
type BookingConfig struct {
	Timezone        string `toml:"timezone"`
	MaxBookingDays  int    `toml:"max_booking_days"`
	CapacityMode    string `toml:"capacity_mode"`
	DefaultStatus   string `toml:"default_status"`
	RateLimitMax    int    `toml:"rate_limit_max"`
	RateLimitWindow int    `toml:"rate_limit_window"` // секунды
}

// Settings возвращает настройки по умолчанию
func (c BookingConfig) Settings() domain.Settings {
	return domain.Settings{
		CapacityMode:   domain.CapacityMode(c.CapacityMode),
		DefaultStatus:  domain.AppointmentStatus(c.DefaultStatus),
		MaxBookingDays: c.MaxBookingDays,
	}
}

// AdminConfig параметры доступа администратора
type AdminConfig struct {
	Token string `toml:"token"`
}

// NotificationsConfig параметры уведомлений
type NotificationsConfig struct {
	Enabled         bool     `toml:"enabled"`
	TemplatesFile   string   `toml:"templates_file"`
	AdminEmail      string   `toml:"admin_email"`
	AdminRecipients []string `toml:"admin_recipients"`
	SiteName        string   `toml:"site_name"`
	SiteURL         string   `toml:"site_url"`
	QueueSize       int      `toml:"queue_size"`
}

// Load загружает .env (если есть) и конфигурацию из TOML файла.
// Секреты берутся из окружения: DB_PASSWORD, ADMIN_TOKEN, REDIS_PASSWORD.
func Load(path string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
			TxMaxRetries:    3,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc_appointment_service",
		},
		Redis: RedisConfig{
			CacheTTL: 300,
			Prefix:   "appointments:",
		},
		Booking: BookingConfig{
			Timezone:        "UTC",
			MaxBookingDays:  domain.DefaultMaxBookingDays,
			CapacityMode:    string(domain.DefaultCapacityMode),
			DefaultStatus:   string(domain.DefaultStatus),
			RateLimitMax:    5,
			RateLimitWindow: 300,
		},
		Notifications: NotificationsConfig{QueueSize: 100},
	}
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("ADMIN_TOKEN"); ok {
		c.Admin.Token = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		c.Redis.Password = v
	}
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be between 1 and 65535")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database.host and database.dbname are required")
	}
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("booking.timezone: %w", err)
	}
	if err := c.Booking.Settings().Validate(); err != nil {
		return fmt.Errorf("booking: %w", err)
	}
	if c.Booking.RateLimitMax <= 0 || c.Booking.RateLimitWindow <= 0 {
		return fmt.Errorf("booking.rate_limit_max and booking.rate_limit_window must be positive")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	if c.Notifications.QueueSize <= 0 {
		return fmt.Errorf("notifications.queue_size must be positive")
	}
	return nil
}
