// Package config loads runtime settings shared by the GenreDNA binaries.
//
// Sources are layered, later ones winning: built-in defaults, an optional
// YAML file, an optional .env file and GENREDNA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix     = "GENREDNA_"
	ConfigPathEnv = "GENREDNA_CONFIG"
)

// DefaultConfigPaths are searched when GENREDNA_CONFIG is unset.
var DefaultConfigPaths = []string{
	"genredna.yaml",
	"genredna.yml",
}

// Config holds all runtime configuration.
type Config struct {
	// Prediction API root. Empty selects the simulated backend.
	APIURL string `koanf:"api_url" validate:"omitempty,http_url"`

	MockDelayMin time.Duration `koanf:"mock_delay_min" validate:"gte=0"`
	MockDelayMax time.Duration `koanf:"mock_delay_max" validate:"gtefield=MockDelayMin"`

	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error fatal"`
	LogFormat string `koanf:"log_format" validate:"oneof=console json"`

	// Server
	Port               int      `koanf:"port" validate:"min=1,max=65535"`
	DBPath             string   `koanf:"db_path"`
	AllowedOrigins     []string `koanf:"allowed_origins" validate:"min=1,dive,required"`
	MaxUploadMB        int      `koanf:"max_upload_mb" validate:"min=1,max=1024"`
	UploadDir          string   `koanf:"upload_dir"` // empty uses the OS temp dir
	RateLimitPerMinute int      `koanf:"rate_limit_per_minute" validate:"gte=0"` // 0 disables
}

func defaultConfig() *Config {
	return &Config{
		APIURL:             "",
		MockDelayMin:       1500 * time.Millisecond,
		MockDelayMax:       2500 * time.Millisecond,
		LogLevel:           "info",
		LogFormat:          "console",
		Port:               8000,
		DBPath:             "",
		AllowedOrigins:     []string{"*"},
		MaxUploadMB:        50,
		UploadDir:          "",
		RateLimitPerMinute: 120,
	}
}

// sliceKeys arrive from the environment as comma-separated strings.
var sliceKeys = []string{"allowed_origins"}

var validate = validator.New()

// Load resolves the configuration. A missing .env or YAML file is not an
// error; a malformed one is.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitSliceKeys(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// UseSimulation reports whether no prediction API is configured.
func (c *Config) UseSimulation() bool {
	return c.APIURL == ""
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransform maps GENREDNA_MOCK_DELAY_MIN to mock_delay_min. GENREDNA_CONFIG
// names the file itself and is dropped.
func envTransform(key string) string {
	if key == ConfigPathEnv {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
}

func splitSliceKeys(k *koanf.Koanf) error {
	for _, key := range sliceKeys {
		s, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(key, out); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}
