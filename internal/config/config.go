package config

import "errors"

// Config is the root application configuration. Secrets are loaded
// here once and handed to constructors explicitly; nothing else in
// the codebase reads the environment.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Sweep    SweepConfig    `yaml:"sweep"`
	Email    EmailConfig    `yaml:"email"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	// AppBaseURL is the public base used to build check-in and
	// view-note links in outgoing email.
	AppBaseURL string `yaml:"app_base_url" env:"APP_BASE_URL" env-default:"http://localhost:8080"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"data/lastnote.db"`
}

// AuthConfig holds the shared secret used to verify bearer tokens
// issued by the external identity provider.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
}

// SweepConfig holds the secrets guarding the scheduled sweep trigger
// and the internal delivery endpoint.
type SweepConfig struct {
	CronSecret     string `yaml:"cron_secret"     env:"CRON_SECRET"         env-required:"true"`
	InternalSecret string `yaml:"internal_secret" env:"INTERNAL_API_SECRET" env-required:"true"`
}

// EmailConfig holds the transactional email provider settings.
type EmailConfig struct {
	APIKey    string `yaml:"api_key"    env:"EMAIL_API_KEY"`
	APIBase   string `yaml:"api_base"   env:"EMAIL_API_BASE"   env-default:"https://api.resend.com"`
	FromEmail string `yaml:"from_email" env:"EMAIL_FROM"       env-default:"onboarding@lastnote.live"`
	FromName  string `yaml:"from_name"  env:"EMAIL_FROM_NAME"  env-default:"My Last Note"`
}

func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server port out of range")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth jwt secret is required")
	}
	if cfg.Sweep.CronSecret == "" {
		return errors.New("sweep cron secret is required")
	}
	if cfg.Sweep.InternalSecret == "" {
		return errors.New("sweep internal secret is required")
	}
	return nil
}
