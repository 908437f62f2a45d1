// Package config loads and validates the TOML configuration file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"docscope/internal/shared/util"
)

type Config struct {
	Version       int           `toml:"version"`
	Mock          Mock          `toml:"mock"`
	Resolve       Resolve       `toml:"resolve"`
	DB            Database      `toml:"db"`
	Observability Observability `toml:"observability"`
}

// Mock configures which module names resolve to substitutes instead of
// failing. Patterns match the name itself and every dotted descendant;
// glob metacharacters are allowed with "." as the separator.
type Mock struct {
	Modules     []string `toml:"modules"`
	WarnIsError bool     `toml:"warn_is_error"`
}

type Resolve struct {
	ObjectType  string  `toml:"object_type"`
	WarnsPerSec float64 `toml:"warns_per_sec"`
}

type Database struct {
	Enabled     bool          `toml:"enabled"`
	Driver      string        `toml:"driver"`
	Path        string        `toml:"path"`
	ProjectKey  string        `toml:"project_key"`
	BusyTimeout time.Duration `toml:"busy_timeout"`
}

type Observability struct {
	Enabled       bool   `toml:"enabled"`
	Port          int    `toml:"port"`
	OTLPEndpoint  string `toml:"otlp_endpoint"`
	EnableTracing bool   `toml:"enable_tracing"`
	EnableMetrics bool   `toml:"enable_metrics"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateMock(&cfg); err != nil {
		return nil, err
	}
	if err := validateResolve(&cfg); err != nil {
		return nil, err
	}
	if err := validateDatabase(&cfg); err != nil {
		return nil, err
	}
	if err := validateObservability(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if strings.TrimSpace(cfg.Resolve.ObjectType) == "" {
		cfg.Resolve.ObjectType = "object"
	}
	if cfg.Resolve.WarnsPerSec <= 0 {
		cfg.Resolve.WarnsPerSec = 1
	}

	if strings.TrimSpace(cfg.DB.Driver) == "" {
		cfg.DB.Driver = "sqlite"
	}
	if strings.TrimSpace(cfg.DB.Path) == "" {
		cfg.DB.Path = "attrdocs.db"
	}
	if strings.TrimSpace(cfg.DB.ProjectKey) == "" {
		cfg.DB.ProjectKey = "default"
	}
	if cfg.DB.BusyTimeout <= 0 {
		cfg.DB.BusyTimeout = 5 * time.Second
	}

	if cfg.Observability.Port == 0 {
		cfg.Observability.Port = 9090
	}
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateMock(cfg *Config) error {
	seen := make(map[string]bool, len(cfg.Mock.Modules))
	for i, name := range cfg.Mock.Modules {
		ref := fmt.Sprintf("mock.modules[%d]", i)
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return fmt.Errorf("%s must not be empty", ref)
		}
		if strings.HasPrefix(trimmed, ".") || strings.HasSuffix(trimmed, ".") || strings.Contains(trimmed, "..") {
			return fmt.Errorf("%s: malformed dotted name %q", ref, name)
		}
		if seen[trimmed] && !util.ContainsGlobMeta(trimmed) {
			return fmt.Errorf("duplicate mock module %q", trimmed)
		}
		seen[trimmed] = true
	}
	return nil
}

func validateResolve(cfg *Config) error {
	objType := strings.TrimSpace(cfg.Resolve.ObjectType)
	if strings.ContainsAny(objType, " \t\n") {
		return fmt.Errorf("resolve.object_type must be a single word, got %q", cfg.Resolve.ObjectType)
	}
	return nil
}

func validateDatabase(cfg *Config) error {
	if !cfg.DB.Enabled {
		return nil
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	if driver != "sqlite" {
		return fmt.Errorf("db.driver must be sqlite, got %q", cfg.DB.Driver)
	}
	if strings.TrimSpace(cfg.DB.Path) == "" {
		return fmt.Errorf("db.path must not be empty")
	}
	return nil
}

func validateObservability(cfg *Config) error {
	obs := cfg.Observability
	if !obs.Enabled {
		return nil
	}
	if obs.Port < 1 || obs.Port > 65535 {
		return fmt.Errorf("observability.port must be in 1..65535, got %d", obs.Port)
	}
	if obs.EnableTracing && strings.TrimSpace(obs.OTLPEndpoint) == "" {
		return fmt.Errorf("observability.otlp_endpoint must not be empty when tracing is enabled")
	}
	return nil
}
