// Package config defines the application configuration and its loading rules.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Review   ReviewConfig   `mapstructure:"review"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains the single-learner authentication settings: the JWT
// signing secret and the bcrypt hash of the learner's password.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"           validate:"required,min=32"`
	PasswordHash       string `mapstructure:"password_hash"        validate:"required"`
	TokenLifetimeHours int    `mapstructure:"token_lifetime_hours" validate:"required,gt=0"`
}

// GeminiConfig contains the settings for the Gemini-backed text recognition
// and translation providers. An empty APIKey disables the providers; the scan
// endpoints then run in degraded mode (no recognition, marked-fallback
// translations).
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// ReviewConfig externalizes the scheduler parameters. The defaults reproduce
// the stock cadence and must not be changed casually: existing entries were
// scheduled against them.
type ReviewConfig struct {
	IntervalsDays     []int `mapstructure:"intervals_days"      validate:"required,min=1,dive,gt=0"`
	LapseIntervalDays int   `mapstructure:"lapse_interval_days" validate:"required,gt=0"`
}
