package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"libraryapi/internal/platform/crypto"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config is the process configuration, built once at startup and passed down.
type Config struct {
	Addr                   string
	Storage                string
	DatabaseDSN            string
	JWTSecret              string
	AccessTokenTTL         time.Duration
	DBTimeout              time.Duration
	AllowAdminRegistration bool
	RateLimitRPS           float64
	RateLimitBurst         int
	CORSAllowedOrigins     []string
	MaxBodyBytes           int64
	EnableHSTS             bool
	TrustProxyHeaders      bool
	LogLevel               slog.Level
}

// Load reads .env files (without overriding the process environment) and
// builds a Config from environment variables.
func Load() (Config, error) {
	LoadEnvFiles()
	return FromEnv(os.Getenv)
}

// LoadEnvFiles loads .env and .env.local into the process environment.
func LoadEnvFiles() {
	// godotenv.Load never overrides variables already set by the runtime.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// FromEnv builds a Config using getenv as the variable source.
func FromEnv(getenv func(string) string) (Config, error) {
	p := parser{getenv: getenv}

	cfg := Config{
		Addr:                   p.str("APP_ADDR", ":8080"),
		Storage:                strings.ToLower(p.str("STORAGE", StoragePostgres)),
		DatabaseDSN:            getenv("DB_DSN"),
		JWTSecret:              getenv("JWT_SECRET"),
		AccessTokenTTL:         p.duration("ACCESS_TOKEN_TTL", crypto.DefaultAccessTokenTTL),
		DBTimeout:              p.duration("DB_TIMEOUT", 3*time.Second),
		AllowAdminRegistration: p.boolean("ALLOW_ADMIN_REGISTRATION", true),
		RateLimitRPS:           p.float("RATE_LIMIT_RPS", 5),
		RateLimitBurst:         p.integer("RATE_LIMIT_BURST", 10),
		CORSAllowedOrigins:     splitList(getenv("CORS_ALLOWED_ORIGINS")),
		MaxBodyBytes:           int64(p.integer("MAX_BODY_BYTES", 1<<20)),
		EnableHSTS:             p.boolean("ENABLE_HSTS", false),
		TrustProxyHeaders:      p.boolean("TRUST_PROXY_HEADERS", false),
		LogLevel:               p.level("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.JWTSecret == "" {
		p.fail("JWT_SECRET is required")
	}
	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseDSN == "" {
			p.fail("DB_DSN is required when STORAGE=postgres")
		}
	case StorageMemory:
	default:
		p.fail(fmt.Sprintf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage))
	}
	if cfg.AccessTokenTTL <= 0 {
		p.fail("ACCESS_TOKEN_TTL must be positive")
	}
	if cfg.DBTimeout <= 0 {
		p.fail("DB_TIMEOUT must be positive")
	}
	if cfg.MaxBodyBytes <= 0 {
		p.fail("MAX_BODY_BYTES must be positive")
	}

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

type parser struct {
	getenv func(string) string
	errs   []error
}

func (p *parser) fail(msg string) {
	p.errs = append(p.errs, errors.New(msg))
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(fmt.Sprintf("%s: invalid duration %q", key, v))
		return def
	}
	return d
}

func (p *parser) boolean(key string, def bool) bool {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(fmt.Sprintf("%s: invalid boolean %q", key, v))
		return def
	}
	return b
}

func (p *parser) integer(key string, def int) int {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(fmt.Sprintf("%s: invalid integer %q", key, v))
		return def
	}
	return n
}

func (p *parser) float(key string, def float64) float64 {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(fmt.Sprintf("%s: invalid number %q", key, v))
		return def
	}
	return f
}

func (p *parser) level(key string, def slog.Level) slog.Level {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		p.fail(fmt.Sprintf("%s: invalid log level %q", key, v))
		return def
	}
	return lvl
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
