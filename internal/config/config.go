// Package config loads the feedsearch configuration from per-environment
// YAML files with ${VAR} expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/konectfeed/feedsearch/internal/domain/search/plan"
	"github.com/konectfeed/feedsearch/internal/domain/search/query"
	"github.com/konectfeed/feedsearch/internal/domain/search/sortkey"
	"github.com/konectfeed/feedsearch/internal/domain/search/strategy"
	"github.com/konectfeed/feedsearch/internal/repository/listing"
)

// Config holds the feedsearch API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds the deployment's search policies. Each of these is a
// deployment-time decision, never inferred per request.
type SearchConfig struct {
	// Strategy selects the free-text strategy: tokenized or substring.
	Strategy string `yaml:"strategy"`
	// FieldMatch declares how city/category/subcategory filters match:
	// substring or exact.
	FieldMatch string `yaml:"field_match"`
	// RequireFilter rejects queries with neither a term nor a city.
	RequireFilter bool `yaml:"require_filter"`
	// SecondarySort picks the secondary ranking key: rating or price.
	SecondarySort string `yaml:"secondary_sort"`
	// MaxLimit caps the per-request result count.
	MaxLimit int `yaml:"max_limit"`
	// CandidateWindow bounds how many candidate rows one search fetches.
	CandidateWindow int `yaml:"candidate_window"`
	// KeyPrefix is the hash key namespace listings live under.
	KeyPrefix string `yaml:"key_prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.Strategy == "" {
		c.Search.Strategy = string(strategy.Tokenized)
	}
	if c.Search.FieldMatch == "" {
		c.Search.FieldMatch = string(plan.MatchSubstring)
	}
	if c.Search.SecondarySort == "" {
		c.Search.SecondarySort = string(sortkey.SecondaryRating)
	}
	if c.Search.MaxLimit <= 0 {
		c.Search.MaxLimit = plan.DefaultMaxLimit
	}
	if c.Search.CandidateWindow <= 0 {
		c.Search.CandidateWindow = listing.DefaultCandidateWindow
	}
	if c.Search.KeyPrefix == "" {
		c.Search.KeyPrefix = "konectfeed:listing:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if !strategy.Strategy(c.Search.Strategy).IsValid() {
		return fmt.Errorf("search.strategy must be %q or %q, got %q",
			strategy.Tokenized, strategy.Substring, c.Search.Strategy)
	}
	if !plan.MatchPolicy(c.Search.FieldMatch).IsValid() {
		return fmt.Errorf("search.field_match must be %q or %q, got %q",
			plan.MatchSubstring, plan.MatchExact, c.Search.FieldMatch)
	}
	if !sortkey.SecondaryKey(c.Search.SecondarySort).IsValid() {
		return fmt.Errorf("search.secondary_sort must be %q or %q, got %q",
			sortkey.SecondaryRating, sortkey.SecondaryPrice, c.Search.SecondarySort)
	}
	if c.Search.CandidateWindow < c.Search.MaxLimit {
		return fmt.Errorf("search.candidate_window (%d) must cover search.max_limit (%d)",
			c.Search.CandidateWindow, c.Search.MaxLimit)
	}
	return nil
}

// QueryPolicy converts the search section into the normalizer policy.
func (c *Config) QueryPolicy() query.Policy {
	return query.Policy{RequireFilter: c.Search.RequireFilter}
}

// PlanPolicy converts the search section into the compiler policy.
func (c *Config) PlanPolicy() plan.Policy {
	return plan.Policy{
		FieldMatch: plan.MatchPolicy(c.Search.FieldMatch),
		Strategy:   strategy.Strategy(c.Search.Strategy),
		Secondary:  sortkey.SecondaryKey(c.Search.SecondarySort),
		MaxLimit:   c.Search.MaxLimit,
	}
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
