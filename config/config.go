package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Booking BookingConfig
	Metrics MetricsConfig
}

type AppConfig struct {
	Port     string
	Env      string
	Timezone string
	LogLevel string
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type BookingConfig struct {
	DefaultSlotMinutes int
	ScheduleDays       int
	MaxScheduleDays    int
	SlotClaims         bool
}

type MetricsConfig struct {
	Enabled bool
}

// LoadConfig reads .env (when present) and the process environment.
// Environment variables win over .env values.
func LoadConfig() (*Config, error) {
	// godotenv never overrides variables already set in the environment
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			Timezone: v.GetString("APP_TIMEZONE"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			AccessExpiry:  durationOr(v.GetString("JWT_ACCESS_EXPIRY"), 15*time.Minute),
			RefreshExpiry: durationOr(v.GetString("JWT_REFRESH_EXPIRY"), 7*24*time.Hour),
		},
		Booking: BookingConfig{
			DefaultSlotMinutes: v.GetInt("BOOKING_DEFAULT_SLOT_MINUTES"),
			ScheduleDays:       v.GetInt("BOOKING_SCHEDULE_DAYS"),
			MaxScheduleDays:    v.GetInt("BOOKING_MAX_SCHEDULE_DAYS"),
			SlotClaims:         v.GetBool("BOOKING_SLOT_CLAIMS"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location resolves APP_TIMEZONE; "today" for booking checks is computed in it
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DSN returns the gorm/pgx keyword DSN
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// MigrateURL returns the URL form used by the golang-migrate pgx/v5 driver
func (c DBConfig) MigrateURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Booking.DefaultSlotMinutes <= 0 {
		return fmt.Errorf("BOOKING_DEFAULT_SLOT_MINUTES must be positive, got %d", c.Booking.DefaultSlotMinutes)
	}
	if c.Booking.MaxScheduleDays <= 0 || c.Booking.ScheduleDays <= 0 || c.Booking.ScheduleDays > c.Booking.MaxScheduleDays {
		return fmt.Errorf("BOOKING_SCHEDULE_DAYS must be between 1 and BOOKING_MAX_SCHEDULE_DAYS (%d)", c.Booking.MaxScheduleDays)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "see_a_doctor")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_ACCESS_EXPIRY", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRY", "168h")

	v.SetDefault("BOOKING_DEFAULT_SLOT_MINUTES", 30)
	v.SetDefault("BOOKING_SCHEDULE_DAYS", 7)
	v.SetDefault("BOOKING_MAX_SCHEDULE_DAYS", 31)
	v.SetDefault("BOOKING_SLOT_CLAIMS", true)

	v.SetDefault("METRICS_ENABLED", true)
}

func durationOr(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
