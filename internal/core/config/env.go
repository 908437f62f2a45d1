package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. Pattern: DOCSCOPE_[SECTION]_[KEY].
func ApplyEnvOverrides(cfg *Config) {
	// Mock
	if val, ok := os.LookupEnv("DOCSCOPE_MOCK_MODULES"); ok {
		slog.Info("applying env override", "key", "DOCSCOPE_MOCK_MODULES", "value", val)
		cfg.Mock.Modules = splitList(val)
	}
	setEnvBool(&cfg.Mock.WarnIsError, "DOCSCOPE_MOCK_WARN_IS_ERROR")

	// Resolve
	setEnvString(&cfg.Resolve.ObjectType, "DOCSCOPE_RESOLVE_OBJECT_TYPE")

	// Database
	setEnvBool(&cfg.DB.Enabled, "DOCSCOPE_DB_ENABLED")
	setEnvString(&cfg.DB.Path, "DOCSCOPE_DB_PATH")
	setEnvString(&cfg.DB.ProjectKey, "DOCSCOPE_DB_PROJECT_KEY")
	setEnvDuration(&cfg.DB.BusyTimeout, "DOCSCOPE_DB_BUSY_TIMEOUT")

	// Observability
	setEnvBool(&cfg.Observability.Enabled, "DOCSCOPE_OBSERVABILITY_ENABLED")
	setEnvInt(&cfg.Observability.Port, "DOCSCOPE_OBSERVABILITY_PORT")
	setEnvString(&cfg.Observability.OTLPEndpoint, "DOCSCOPE_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvBool(&cfg.Observability.EnableTracing, "DOCSCOPE_OBSERVABILITY_ENABLE_TRACING")
	setEnvBool(&cfg.Observability.EnableMetrics, "DOCSCOPE_OBSERVABILITY_ENABLE_METRICS")
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Info("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Info("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			slog.Info("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Info("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
