package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	GinMode   string `env:"GIN_MODE" envDefault:"debug"`
	Addr      string `env:"HTTP_ADDR" envDefault:":8080"`
	TZ        string `env:"TZ" envDefault:"UTC"`
	DBHost    string `env:"DB_HOST" envDefault:"localhost"`
	DBPort    string `env:"DB_PORT" envDefault:"5432"`
	DBUser    string `env:"DB_USER" envDefault:"postgres"`
	DBPass    string `env:"DB_PASS"`
	DBName    string `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode string `env:"DB_SSLMODE"`

	// Startup waits for the database this long before giving up, which
	// covers the catalog coming up alongside postgres in compose.
	DBConnectAttempts int `env:"DB_CONNECT_ATTEMPTS" envDefault:"10"`
	DBConnectBackoff  int `env:"DB_CONNECT_BACKOFF_SECONDS" envDefault:"2"`

	// JWTSecret signs session tokens. A fixed default is only acceptable
	// in debug mode; Load rejects it in release mode.
	JWTSecret   string `env:"JWT_SECRET" envDefault:"dev-secret"`
	TokenTTLMin int    `env:"TOKEN_TTL_MINUTES" envDefault:"60"`

	// PolicyVariant selects the access policy: "role" gates writes by the
	// profile role, "legacy" allows any authenticated user to write.
	PolicyVariant string `env:"POLICY_VARIANT" envDefault:"role"`

	// BookRouteStyle picks the book write route table: "path" carries the
	// id in the URL, "body" in the JSON payload.
	BookRouteStyle string `env:"BOOK_ROUTE_STYLE" envDefault:"path"`

	// AuthFailureMode controls how a denied request is reported:
	// "forbid" answers 403, "redirect" sends the client to LoginURL.
	AuthFailureMode string `env:"AUTH_FAILURE_MODE" envDefault:"forbid"`
	LoginURL        string `env:"LOGIN_URL" envDefault:"/login"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if cfg.DBConnectAttempts < 1 {
		return nil, fmt.Errorf("DB_CONNECT_ATTEMPTS must be at least 1, got %d", cfg.DBConnectAttempts)
	}

	if cfg.GinMode == "release" && cfg.JWTSecret == "dev-secret" {
		return nil, fmt.Errorf("JWT_SECRET must be set in release mode")
	}

	switch cfg.PolicyVariant {
	case "role", "legacy":
	default:
		return nil, fmt.Errorf("POLICY_VARIANT must be %q or %q, got %q", "role", "legacy", cfg.PolicyVariant)
	}

	switch cfg.BookRouteStyle {
	case "path", "body":
	default:
		return nil, fmt.Errorf("BOOK_ROUTE_STYLE must be %q or %q, got %q", "path", "body", cfg.BookRouteStyle)
	}

	switch cfg.AuthFailureMode {
	case "forbid", "redirect":
	default:
		return nil, fmt.Errorf("AUTH_FAILURE_MODE must be %q or %q, got %q", "forbid", "redirect", cfg.AuthFailureMode)
	}

	return &cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}
