package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

type Config struct {
	LogMode string `env:"LOG_MODE" envDefault:"dev"`
	Port    string `env:"PORT" envDefault:"8080"`

	// CORSOrigins overrides the local development origins.
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Disguise DisguiseConfig
	OTel     OTelConfig
}

type DatabaseConfig struct {
	Driver     string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	Host       string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port       int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User       string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password   string `env:"POSTGRES_PASSWORD"`
	Name       string `env:"POSTGRES_NAME" envDefault:"disguise"`
	SSLMode    string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"disguise.db"`
}

// DSN renders the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR"`
	Password   string        `env:"REDIS_PASSWORD"`
	DB         int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

type AuthConfig struct {
	JWTSecretKey string `env:"JWT_SECRET_KEY" envDefault:"defaultsecret"`
}

type DisguiseConfig struct {
	// Site-wide kill switch.
	Enabled            bool     `env:"DISGUISE_ENABLED" envDefault:"true"`
	CourseContactRoles []string `env:"DISGUISE_COURSE_CONTACT_ROLES" envDefault:"editingteacher"`
	DefaultRole        string   `env:"DISGUISE_DEFAULT_ROLE" envDefault:"student"`
	PromptPath         string   `env:"DISGUISE_PROMPT_PATH" envDefault:"/api/disguise/prompt"`
	DefaultNaming      string   `env:"DISGUISE_NAMING_DEFAULT"`
}

type OTelConfig struct {
	Enabled     bool              `env:"OTEL_ENABLED" envDefault:"false"`
	ServiceName string            `env:"OTEL_SERVICE_NAME" envDefault:"neurobridge-disguise"`
	Environment string            `env:"OTEL_ENVIRONMENT" envDefault:"dev"`
	Version     string            `env:"OTEL_SERVICE_VERSION"`
	SampleRatio float64           `env:"OTEL_SAMPLER_RATIO" envDefault:"0.1"`
	Endpoint    string            `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Headers     map[string]string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	Insecure    bool              `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
}

// Load parses the process environment and normalizes the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}
	roles := make([]string, 0, len(cfg.Disguise.CourseContactRoles))
	for _, r := range cfg.Disguise.CourseContactRoles {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	cfg.Disguise.CourseContactRoles = roles
	if cfg.OTel.SampleRatio < 0 {
		cfg.OTel.SampleRatio = 0
	}
	if cfg.OTel.SampleRatio > 1 {
		cfg.OTel.SampleRatio = 1
	}
	return cfg, nil
}
