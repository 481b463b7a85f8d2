package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nikogura/talent-match/pkg/scorer"
	"github.com/pkg/errors"
)

// Defaults applied when the config leaves a field empty.
const (
	DefaultTopN          = 10
	DefaultDomainCount   = 2
	DefaultJobsPerDomain = 6
	DefaultSampleCount   = 5
	DefaultAddress       = ":8080"
	DefaultServerMode    = "release"
	DefaultLogMode       = "production"
)

// Environment variables that override the config file.
const (
	EnvCatalog = "TALENT_MATCH_CATALOG"
	EnvJobs    = "TALENT_MATCH_JOBS"
	EnvPolicy  = "TALENT_MATCH_POLICY"
	EnvAddr    = "TALENT_MATCH_ADDR"
	EnvLogMode = "TALENT_MATCH_LOG_MODE"
	EnvTopN    = "TALENT_MATCH_TOP_N"
)

// Config represents the application configuration.
type Config struct {
	CatalogLocation string         `json:"catalog_location,omitempty"`
	JobsLocation    string         `json:"jobs_location,omitempty"`
	Matching        MatchingConfig `json:"matching"`
	Server          ServerConfig   `json:"server"`
	Log             LogConfig      `json:"log"`
}

// MatchingConfig selects the scoring policy and result sizes.
type MatchingConfig struct {
	Policy        string `json:"policy,omitempty"`
	TopN          int    `json:"top_n,omitempty"`
	DomainCount   int    `json:"domain_count,omitempty"`
	JobsPerDomain int    `json:"jobs_per_domain,omitempty"`
	SampleCount   int    `json:"sample_count,omitempty"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `json:"address,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Mode string `json:"mode,omitempty"`
}

// DefaultPath returns ~/.talent-match/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".talent-match", "config.json")
	return path, err
}

// Default returns a configuration with every default applied.
func Default() (cfg Config) {
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from file with environment variable overrides.
// An empty configPath reads the default location, and a missing default file
// yields the defaults. A missing explicit file is an error.
func Load(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'talent-match init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = cfg.applyEnv()
	if err != nil {
		return cfg, err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func (c *Config) applyEnv() (err error) {
	if v := os.Getenv(EnvCatalog); v != "" {
		c.CatalogLocation = v
	}
	if v := os.Getenv(EnvJobs); v != "" {
		c.JobsLocation = v
	}
	if v := os.Getenv(EnvPolicy); v != "" {
		c.Matching.Policy = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(EnvLogMode); v != "" {
		c.Log.Mode = v
	}
	if v := os.Getenv(EnvTopN); v != "" {
		var n int
		n, err = strconv.Atoi(v)
		if err != nil {
			err = errors.Wrapf(err, "invalid %s", EnvTopN)
			return err
		}
		c.Matching.TopN = n
	}
	return err
}

func (c *Config) applyDefaults() {
	if c.Matching.Policy == "" {
		c.Matching.Policy = string(scorer.PolicyGated)
	}
	if c.Matching.TopN == 0 {
		c.Matching.TopN = DefaultTopN
	}
	if c.Matching.DomainCount == 0 {
		c.Matching.DomainCount = DefaultDomainCount
	}
	if c.Matching.JobsPerDomain == 0 {
		c.Matching.JobsPerDomain = DefaultJobsPerDomain
	}
	if c.Matching.SampleCount == 0 {
		c.Matching.SampleCount = DefaultSampleCount
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.Mode == "" {
		c.Server.Mode = DefaultServerMode
	}
	if c.Log.Mode == "" {
		c.Log.Mode = DefaultLogMode
	}
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() (err error) {
	c.applyDefaults()

	_, err = scorer.ParsePolicy(c.Matching.Policy)
	if err != nil {
		err = errors.Wrap(err, "matching.policy")
		return err
	}

	if c.Matching.TopN < 0 || c.Matching.DomainCount < 0 || c.Matching.JobsPerDomain < 0 || c.Matching.SampleCount < 0 {
		err = errors.New("matching sizes must not be negative")
		return err
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		err = errors.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
		return err
	}

	switch c.Log.Mode {
	case "development", "production", "nop":
	default:
		err = errors.Errorf("log.mode must be development, production or nop, got %q", c.Log.Mode)
		return err
	}

	if c.CatalogLocation != "" && !isURL(c.CatalogLocation) {
		_, err = os.Stat(c.CatalogLocation)
		if os.IsNotExist(err) {
			err = errors.Errorf("catalog file not found: %s", c.CatalogLocation)
			return err
		}
		err = nil
	}

	return err
}

// Policy returns the configured scoring policy.
func (c *Config) Policy() (policy scorer.Policy, err error) {
	policy, err = scorer.ParsePolicy(c.Matching.Policy)
	return policy, err
}

func isURL(location string) (ok bool) {
	ok = strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
	return ok
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Default()

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
