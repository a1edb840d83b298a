package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type StoreBackend string

const (
	StoreSQLite StoreBackend = "sqlite"
	StoreFile   StoreBackend = "file"
	StoreMemory StoreBackend = "memory"
)

func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreSQLite, StoreFile, StoreMemory:
		return true
	default:
		return false
	}
}

const EnvConfigPath = "TASKLIST_CONFIG"

type RuntimeConfig struct {
	Store          StoreBackend `toml:"store"`
	StorePath      string       `toml:"store_path"`
	LogLevel       string       `toml:"log_level"`
	LogFile        string       `toml:"log_file"`
	SaveWarnings   bool         `toml:"save_warnings"`
	WriteTimeoutMS int          `toml:"write_timeout_ms"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Store:          StoreSQLite,
		StorePath:      ".tasklist.db",
		LogLevel:       "info",
		LogFile:        "",
		SaveWarnings:   true,
		WriteTimeoutMS: 5000,
	}
}

func (c RuntimeConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutMS) * time.Millisecond
}

func (c RuntimeConfig) Validate() error {
	if !c.Store.IsValid() {
		return fmt.Errorf("config: unknown store %q", c.Store)
	}
	if c.Store != StoreMemory && strings.TrimSpace(c.StorePath) == "" {
		return errors.New("config: store_path is required")
	}
	if c.WriteTimeoutMS <= 0 {
		return errors.New("config: write_timeout_ms must be positive")
	}
	return nil
}

// Load builds the runtime config: defaults, then the TOML file named by
// TASKLIST_CONFIG (if set), then env overrides.
func Load() (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		var err error
		cfg, err = LoadFile(cfg, path)
		if err != nil {
			return RuntimeConfig{}, err
		}
	}
	cfg = RuntimeConfigFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// LoadFile overlays the keys present in the TOML file onto base.
func LoadFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	cfg := base
	if _, err := toml.DecodeFile(filepath.Clean(path), &cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.Store = StoreBackend(strings.ToLower(strings.TrimSpace(string(cfg.Store))))
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TASKLIST_STORE")); v != "" {
		cfg.Store = StoreBackend(strings.ToLower(v))
	}
	if v := strings.TrimSpace(os.Getenv("TASKLIST_STORE_PATH")); v != "" {
		cfg.StorePath = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKLIST_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKLIST_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("TASKLIST_SAVE_WARNINGS"); ok {
		cfg.SaveWarnings = v
	}
	if v, ok := getEnvInt("TASKLIST_WRITE_TIMEOUT_MS"); ok && v > 0 {
		cfg.WriteTimeoutMS = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
