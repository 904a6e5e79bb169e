package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/kitchenlog/pipeline"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Display  DisplayConfig
	Access   AccessConfig
	Export   ExportConfig
}

type ServerConfig struct {
	Port       string
	GinMode    string
	CORSOrigin string
}

type LogConfig struct {
	Level  string
	Format string
}

// DatabaseConfig selects the gorm dialector. Driver is "sqlite" or "mysql".
type DatabaseConfig struct {
	Driver string
	DSN    string
}

type DisplayConfig struct {
	Timezone        string
	TimestampLayout string
	Location        *time.Location
}

// AccessConfig drives the shared-passphrase gate. Only the bcrypt hash of the
// passphrase is kept once Load returns.
type AccessConfig struct {
	PassphraseHash []byte
	TokenSecret    []byte
	TokenTTL       time.Duration
}

func (a AccessConfig) Enabled() bool {
	return len(a.PassphraseHash) > 0
}

type ExportConfig struct {
	LogoSource   string
	AssetTimeout time.Duration
	ArchiveDir   string
	ArchiveCron  string
}

// Load reads an optional env file and then the process environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		// a missing .env is fine; everything may come from the environment
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:       getenvWithDefault("PORT", "8080"),
			GinMode:    os.Getenv("GIN_MODE"),
			CORSOrigin: getenvWithDefault("CORS_ORIGIN", "*"),
		},
		Log: LogConfig{
			Level:  getenvWithDefault("LOG_LEVEL", "info"),
			Format: getenvWithDefault("LOG_FORMAT", "text"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getenvWithDefault("DB_DRIVER", "sqlite")),
			DSN:    getenvWithDefault("DB_DSN", "kitchenlog.db"),
		},
		Display: DisplayConfig{
			Timezone:        getenvWithDefault("DISPLAY_TIMEZONE", pipeline.DefaultDisplayZone),
			TimestampLayout: getenvWithDefault("TIMESTAMP_LAYOUT", pipeline.DefaultTimestampLayout),
		},
		Export: ExportConfig{
			LogoSource:  os.Getenv("LOGO_SOURCE"),
			ArchiveDir:  os.Getenv("ARCHIVE_DIR"),
			ArchiveCron: getenvWithDefault("ARCHIVE_CRON", "30 0 * * *"),
		},
	}

	var err error
	if cfg.Export.AssetTimeout, err = durationEnv("ASSET_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.Access.TokenTTL, err = durationEnv("ACCESS_TOKEN_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if pass := os.Getenv("ACCESS_PASSPHRASE"); pass != "" {
		cfg.Access.PassphraseHash, err = bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash access passphrase: %w", err)
		}
	}
	cfg.Access.TokenSecret = []byte(os.Getenv("ACCESS_TOKEN_SECRET"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and resolves the display zone.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Server.Port)
	}

	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or mysql, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("DB_DSN must be provided")
	}

	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return fmt.Errorf("DISPLAY_TIMEZONE %q is not an IANA zone: %w", c.Display.Timezone, err)
	}
	c.Display.Location = loc

	if c.Access.Enabled() && len(c.Access.TokenSecret) < 16 {
		return errors.New("ACCESS_TOKEN_SECRET must be at least 16 bytes when ACCESS_PASSPHRASE is set")
	}
	if c.Export.AssetTimeout <= 0 {
		return errors.New("ASSET_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) Formatter() pipeline.Formatter {
	return pipeline.NewFormatter(c.Display.Location, c.Display.TimestampLayout)
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
