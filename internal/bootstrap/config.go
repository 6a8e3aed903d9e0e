package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"yen-network/internal/auth"
	"yen-network/internal/infra/setup"
	"yen-network/internal/service"
)

// Config holds every setting read from the environment.
type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     string `envconfig:"PORT" default:"5000"`

	DatabaseDSN string `envconfig:"DATABASE_DSN"`
	DBUser      string `envconfig:"DB_USER"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBHost      string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort      string `envconfig:"DB_PORT" default:"3306"`
	DBName      string `envconfig:"DB_NAME" default:"yen_platform"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	KeyPrefix     string `envconfig:"REDIS_KEY_PREFIX" default:"yen:"`

	JWTSecret    string   `envconfig:"JWT_SECRET"`
	JWTExpiresIn string   `envconfig:"JWT_EXPIRES_IN" default:"7d"`
	AdminEmails  []string `envconfig:"ADMIN_EMAILS" default:"silvananjeru25@gmail.com"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:3001,http://127.0.0.1:3000,http://127.0.0.1:3001"`

	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"100"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	ConnectionResolvePolicy string `envconfig:"CONNECTION_RESOLVE_POLICY" default:"error"`
	WorkerConcurrency       int    `envconfig:"WORKER_CONCURRENCY" default:"10"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Derived by LoadConfig.
	TokenExpiry   time.Duration         `ignored:"true"`
	ResolvePolicy service.ResolvePolicy `ignored:"true"`
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return loadFromEnv()
}

func loadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	expiry, err := auth.ParseExpiry(cfg.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	cfg.TokenExpiry = expiry

	policy, err := service.ParseResolvePolicy(cfg.ConnectionResolvePolicy)
	if err != nil {
		return nil, fmt.Errorf("CONNECTION_RESOLVE_POLICY: %w", err)
	}
	cfg.ResolvePolicy = policy

	cfg.AdminEmails = cleanList(cfg.AdminEmails, true)
	cfg.CORSAllowedOrigins = cleanList(cfg.CORSAllowedOrigins, false)

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimitWindow)
	}
	return &cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// DBOptions returns the MySQL connection settings.
func (c *Config) DBOptions() setup.DBOptions {
	return setup.DBOptions{
		DSN:      c.DatabaseDSN,
		User:     c.DBUser,
		Password: c.DBPassword,
		Host:     c.DBHost,
		Port:     c.DBPort,
		Name:     c.DBName,
		Debug:    !c.IsProduction() && c.LogLevel == "debug",
	}
}

func cleanList(items []string, lower bool) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if lower {
			item = strings.ToLower(item)
		}
		out = append(out, item)
	}
	return out
}
