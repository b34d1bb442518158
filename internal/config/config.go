// Package config loads the application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"todo_backend/internal/shared/ratelimiter"
)

// Supported storage backends.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// EnvProduction is the ENVIRONMENT value that disables degraded password hashing.
const EnvProduction = "production"

// Config holds every setting the server needs. It is built once at startup and
// passed to constructors explicitly.
type Config struct {
	Environment string
	Port        string
	Database    Database
	JWT         JWT
	CORSOrigins []string
	// TrustedProxies lists the proxy IPs or CIDRs whose forwarding headers
	// are believed. Empty trusts none, so the socket address identifies clients.
	TrustedProxies []string
	Log            Log
	Redis          Redis
	AuthRateLimit  string
	Password       Password
}

// Database configures the storage backend.
type Database struct {
	Driver         string
	URL            string
	MaxOpenConns   int
	ConnectTimeout time.Duration
	RunMigrations  bool
}

// JWT configures bearer token signing.
type JWT struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
}

// Log configures the process logger.
type Log struct {
	Level  string
	Format string
}

// Redis configures the optional Redis connection. An empty Addr disables Redis.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Password configures the password hasher.
type Password struct {
	BcryptCost int
	// AllowFallback enables the unsalted SHA-256 path when bcrypt fails.
	// It must stay false in production.
	AllowFallback bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	var errs []error

	env := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		Environment: env,
		Port:        getEnv("PORT", "8080"),
		Database: Database{
			Driver:         strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)),
			URL:            os.Getenv("DATABASE_URL"),
			MaxOpenConns:   intEnv("DB_MAX_OPEN_CONNS", 10, &errs),
			ConnectTimeout: durationEnv("DB_CONNECT_TIMEOUT", 60*time.Second, &errs),
			RunMigrations:  boolEnv("RUN_MIGRATIONS", false, &errs),
		},
		JWT: JWT{
			Secret:    os.Getenv("JWT_SECRET"),
			Algorithm: strings.ToUpper(getEnv("JWT_ALGORITHM", "HS256")),
			TTL:       time.Duration(intEnv("JWT_EXPIRY_DAYS", 7, &errs)) * 24 * time.Hour,
		},
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),
		Log:            Log{Level: getEnv("LOG_LEVEL", "INFO"), Format: strings.ToLower(getEnv("LOG_FORMAT", "json"))},
		AuthRateLimit:  getEnv("AUTH_RATE_LIMIT", "5/minute"),
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       intEnv("REDIS_DB", 0, &errs),
		},
		Password: Password{
			BcryptCost:    intEnv("BCRYPT_COST", bcrypt.DefaultCost, &errs),
			AllowFallback: boolEnv("PASSWORD_HASH_FALLBACK", env != EnvProduction, &errs),
		},
	}

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// IsProduction reports whether the process runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *Config) validate() []error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER %q is not supported", c.Database.Driver))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM %q is not supported", c.JWT.Algorithm))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY_DAYS must be positive"))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be json or text", c.Log.Format))
	}
	for _, p := range c.TrustedProxies {
		if _, err := netip.ParsePrefix(p); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(p); err != nil {
			errs = append(errs, fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p))
		}
	}
	if _, _, err := ratelimiter.Parse(c.AuthRateLimit); err != nil {
		errs = append(errs, fmt.Errorf("AUTH_RATE_LIMIT: %w", err))
	}
	if c.Password.BcryptCost < bcrypt.MinCost || c.Password.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.IsProduction() && c.Password.AllowFallback {
		errs = append(errs, errors.New("PASSWORD_HASH_FALLBACK cannot be enabled in production"))
	}
	return errs
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int, errs *[]error) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func boolEnv(key string, fallback bool, errs *[]error) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func durationEnv(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
