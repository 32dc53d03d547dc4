// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Language      string   `toml:"language"`
	LedgerPath    string   `toml:"ledger_path"`
	HistoryDB     string   `toml:"history_db"`
	BlockedGroups []string `toml:"blocked_groups"`
	LogLevel      string   `toml:"log_level"`

	Delay  DelayConfig    `toml:"delay"`
	Radarr *ManagerConfig `toml:"radarr"`
	Sonarr *ManagerConfig `toml:"sonarr"`
	SubDL  SubDLConfig    `toml:"subdl"`
}

// DelayConfig bounds the randomized pre-upload wait.
type DelayConfig struct {
	MinSeconds int `toml:"min_seconds"`
	MaxSeconds int `toml:"max_seconds"`
}

// Min returns the lower wait bound as a duration.
func (d DelayConfig) Min() time.Duration { return time.Duration(d.MinSeconds) * time.Second }

// Max returns the upper wait bound as a duration.
func (d DelayConfig) Max() time.Duration { return time.Duration(d.MaxSeconds) * time.Second }

// ManagerConfig describes one Radarr or Sonarr instance.
type ManagerConfig struct {
	URL        string        `toml:"url"`
	APIKey     string        `toml:"api_key"`
	Roots      []RootMapping `toml:"roots"`
	AutoUpload bool          `toml:"auto_upload"`
}

// RootMapping maps a root path as the media manager reports it to the
// path the same storage is mounted under locally. Remote may be empty
// when only the folder basename should be reused.
type RootMapping struct {
	Remote string `toml:"remote"`
	Local  string `toml:"local"`
}

// SubDLConfig holds the SubDL credentials.
type SubDLConfig struct {
	SearchAPIKey string `toml:"search_api_key"`
	UploadToken  string `toml:"upload_token"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.LedgerPath == "" {
		cfg.LedgerPath = "processed.log"
	}
	if cfg.HistoryDB == "" {
		cfg.HistoryDB = "subarr.db"
	}
	if cfg.BlockedGroups == nil {
		cfg.BlockedGroups = []string{"sickbeard", "radarr", "sonarr"}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Delay.MinSeconds == 0 {
		cfg.Delay.MinSeconds = 5
	}
	if cfg.Delay.MaxSeconds == 0 {
		cfg.Delay.MaxSeconds = 10
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
