package cliparse

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

const (
	DefaultPort        = 5000
	DefaultDatabaseURL = "pavilion.db"
	DefaultSessionTTL  = 12 * time.Hour
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	LogLevel      string
	SeedPath      string
	SessionSalt   string
	CSRFKey       string // 32 bytes, hex encoded
	SecureCookies bool
	SessionTTL    time.Duration
}

// Bind registers the configuration flags on fs
func Bind(fs *pflag.FlagSet, cfg *Config) {
	// Network config (can be CLI args or env)
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.DatabaseURL, "database", "d", "", "Database URL or sqlite file")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.SeedPath, "seed", "", "YAML file with the initial proposals and reports")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", false, "Mark cookies Secure (serve over HTTPS)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Session lifetime, 0 for the default")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSalt, "session-salt", "", "Salt for hashing client IPs (prefer env)")
	fs.StringVar(&cfg.CSRFKey, "csrf-key", "", "Hex encoded 32 byte CSRF key (prefer env)")
}

// ParseFlags parses args and fills anything not given from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("undesign", pflag.ContinueOnError)
	Bind(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := Resolve(fs, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve falls back to environment variables for flags that were not set,
// applies defaults and validates the result.
func Resolve(fs *pflag.FlagSet, cfg *Config) error {
	if !fs.Changed("port") {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}

	envString(fs, "database", &cfg.DatabaseURL, "DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultDatabaseURL
	}

	envString(fs, "database-type", &cfg.DatabaseType, "DATABASE_TYPE")
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = inferDatabaseType(cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return fmt.Errorf("database type must be sqlite or postgres, got %q", cfg.DatabaseType)
	}

	envString(fs, "log-level", &cfg.LogLevel, "LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	envString(fs, "seed", &cfg.SeedPath, "SEED_PATH")
	envString(fs, "session-salt", &cfg.SessionSalt, "SESSION_SALT")
	envString(fs, "csrf-key", &cfg.CSRFKey, "CSRF_KEY")
	if cfg.CSRFKey != "" {
		if _, err := cfg.CSRFKeyBytes(); err != nil {
			return err
		}
	}

	if !fs.Changed("secure-cookies") {
		if v := os.Getenv("SECURE_COOKIES"); v != "" {
			secure, err := strconv.ParseBool(v)
			if err != nil {
				return errors.New("invalid SECURE_COOKIES env variable")
			}
			cfg.SecureCookies = secure
		}
	}

	if !fs.Changed("session-ttl") {
		if v := os.Getenv("SESSION_TTL"); v != "" {
			ttl, err := time.ParseDuration(v)
			if err != nil {
				return errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = ttl
		}
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}

	return nil
}

// CSRFKeyBytes decodes the configured CSRF key
func (c Config) CSRFKeyBytes() ([]byte, error) {
	key, err := hex.DecodeString(c.CSRFKey)
	if err != nil || len(key) != 32 {
		return nil, errors.New("CSRF key must be 64 hex characters")
	}
	return key, nil
}

func envString(fs *pflag.FlagSet, flag string, dst *string, env string) {
	if fs.Changed(flag) {
		return
	}
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func inferDatabaseType(url string) string {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}
