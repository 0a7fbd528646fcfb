package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/raysh454/jobcheck/internal/assessor"
	"github.com/raysh454/jobcheck/internal/cache"
	"github.com/raysh454/jobcheck/internal/predictor"
	"github.com/raysh454/jobcheck/internal/retention"
	"github.com/raysh454/jobcheck/internal/server"
	"github.com/raysh454/jobcheck/internal/webclient"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "JOBCHECK_"

// Config is the full runtime configuration. It is layered: DefaultConfig,
// then an optional YAML file (LoadFile), then JOBCHECK_* environment
// variables (ApplyEnv), then command-line flags.
type Config struct {
	Server    server.Config    `yaml:"server"`
	Assessor  assessor.Config  `yaml:"assessor"`
	Predictor predictor.Config `yaml:"predictor"`
	WebClient webclient.Config `yaml:"webclient"`
	Cache     cache.Config     `yaml:"cache"`
	Retention retention.Config `yaml:"retention"`

	// DBPath is the SQLite history file. ":memory:" keeps history in process.
	DBPath string `yaml:"db_path"`

	// EDAPath is the dataset summary JSON. Empty serves the built-in stats.
	EDAPath string `yaml:"eda_path"`
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() *Config {
	return &Config{
		Server:    server.DefaultConfig(),
		Assessor:  assessor.DefaultConfig(),
		Predictor: predictor.DefaultConfig(),
		WebClient: webclient.Config{
			Timeout:      10 * time.Second,
			UserAgent:    "jobcheck/0.1",
			MaxBodyBytes: 64 << 10,
		},
		Cache:     cache.DefaultConfig(),
		Retention: retention.DefaultConfig(),
		DBPath:    "jobcheck.db",
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func (cfg *Config) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays JOBCHECK_* variables read through lookup (os.LookupEnv
// in production). Unset variables leave cfg untouched.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(name string, dst *time.Duration) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = d
		return nil
	}

	str("ADDR", &cfg.Server.ListenAddr)
	str("ALLOWED_ORIGIN", &cfg.Server.AllowedOrigin)
	str("BACKEND_URL", &cfg.Predictor.Endpoint)
	str("RULES", &cfg.Assessor.RulesPath)
	str("DB", &cfg.DBPath)
	str("EDA", &cfg.EDAPath)
	str("CACHE", &cfg.Cache.Backend)
	str("REDIS_URL", &cfg.Cache.RedisURL)

	for name, dst := range map[string]*time.Duration{
		"BACKEND_TIMEOUT":    &cfg.Predictor.Timeout,
		"CACHE_TTL":          &cfg.Cache.TTL,
		"RETENTION":          &cfg.Retention.MaxAge,
		"RETENTION_INTERVAL": &cfg.Retention.Interval,
	} {
		if err := dur(name, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup(EnvPrefix + "CACHE_MAX_ENTRIES"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sCACHE_MAX_ENTRIES: %w", EnvPrefix, err)
		}
		cfg.Cache.MaxEntries = n
	}
	return nil
}
