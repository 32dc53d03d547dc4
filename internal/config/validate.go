package config

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid). The run never
// processes an item while any of these are present.
func (c *Config) Validate() []string {
	var errs []string

	if _, err := language.Parse(c.Language); err != nil {
		errs = append(errs, fmt.Sprintf("language: %q is not a valid language tag", c.Language))
	}
	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Sprintf("log_level: must be one of debug, info, warn, error; got %q", c.LogLevel))
	}

	if c.Radarr == nil && c.Sonarr == nil {
		errs = append(errs, "at least one media manager (radarr or sonarr) must be configured")
	}
	errs = append(errs, c.validateManager("radarr", c.Radarr)...)
	errs = append(errs, c.validateManager("sonarr", c.Sonarr)...)

	if c.SubDL.SearchAPIKey == "" {
		errs = append(errs, "subdl.search_api_key: required")
	}
	if c.SubDL.UploadToken == "" {
		errs = append(errs, "subdl.upload_token: required")
	}

	if c.Delay.MinSeconds <= 0 {
		errs = append(errs, fmt.Sprintf("delay.min_seconds: must be positive, got %d", c.Delay.MinSeconds))
	}
	if c.Delay.MaxSeconds < c.Delay.MinSeconds {
		errs = append(errs, fmt.Sprintf("delay.max_seconds: must be >= min_seconds, got %d < %d",
			c.Delay.MaxSeconds, c.Delay.MinSeconds))
	}

	return errs
}

func (c *Config) validateManager(name string, m *ManagerConfig) []string {
	if m == nil {
		return nil
	}

	var errs []string
	if m.URL == "" {
		errs = append(errs, fmt.Sprintf("%s.url: required", name))
	}
	if m.APIKey == "" {
		errs = append(errs, fmt.Sprintf("%s.api_key: required", name))
	}
	if len(m.Roots) == 0 {
		errs = append(errs, fmt.Sprintf("%s.roots: at least one root mapping required", name))
	}
	for i, root := range m.Roots {
		if root.Local == "" {
			errs = append(errs, fmt.Sprintf("%s.roots[%d].local: required", name, i))
			continue
		}
		if _, err := os.Stat(root.Local); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("%s.roots[%d].local: directory %q does not exist", name, i, root.Local))
		}
	}
	return errs
}
