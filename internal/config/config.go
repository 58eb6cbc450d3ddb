package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	AuthModeJWT     = "jwt"
	AuthModeSession = "session"
)

var ErrMisconfigured = errors.New("config invalid")

type Config struct {
	HTTP     HTTPConfig
	Auth     AuthConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Log      LogConfig
}

type HTTPConfig struct {
	Addr               string
	CORSAllowedOrigins []string
}

type AuthConfig struct {
	Mode         string
	JWTSecret    string
	JWTAccessTTL string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type RedisConfig struct {
	URL string
}

type LogConfig struct {
	Level string
	Dev   bool
	File  string
}

func Load() Config {
	dev := os.Getenv("LOG_DEV") == "1"
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		if dev {
			level = "debug"
		} else {
			level = "info"
		}
	}

	return Config{
		HTTP: HTTPConfig{
			Addr:               getenv("HTTP_ADDR", ":8080"),
			CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Auth: AuthConfig{
			Mode:         strings.ToLower(getenv("AUTH_MODE", AuthModeJWT)),
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTAccessTTL: getenv("JWT_ACCESS_TTL", "1h"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Log: LogConfig{
			Level: level,
			Dev:   dev,
			File:  os.Getenv("LOG_FILE"),
		},
	}
}

// Validate reports settings that must stop the process before it serves traffic.
func (c Config) Validate() error {
	switch c.Auth.Mode {
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("%w: JWT_SECRET is required when AUTH_MODE=jwt", ErrMisconfigured)
		}
	case AuthModeSession:
	default:
		return fmt.Errorf("%w: unknown AUTH_MODE %q", ErrMisconfigured, c.Auth.Mode)
	}

	ttl, err := c.Auth.AccessTTL()
	if err != nil {
		return err
	}
	if ttl <= 0 {
		return fmt.Errorf("%w: JWT_ACCESS_TTL must be positive", ErrMisconfigured)
	}

	if c.Postgres.DatabaseURL == "" && (c.Postgres.User == "" || c.Postgres.Database == "") {
		return fmt.Errorf("%w: DATABASE_URL or PGUSER/PGDATABASE is required", ErrMisconfigured)
	}
	return nil
}

func (a AuthConfig) AccessTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(a.JWTAccessTTL)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}
	return ttl, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
