package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) add(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Check runs the semantic rules against an already loaded config
func Check(cfg *Config) *ValidationResult {
	result := &ValidationResult{Valid: true, Errors: []ValidationError{}}

	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		result.add("api/base_url", fmt.Sprintf("Base URL must be an absolute http(s) URL, got %q", cfg.API.BaseURL))
	}
	if cfg.API.Timeout <= 0 {
		result.add("api/timeout", "Timeout must be positive")
	}
	if cfg.API.Retries < 0 {
		result.add("api/retries", "Retries cannot be negative")
	}

	if cfg.Autocomplete.Threshold < 1 {
		result.add("autocomplete/threshold", "Threshold must be at least 1")
	}
	if cfg.Autocomplete.MaxVisible < 1 {
		result.add("autocomplete/max_visible", "max_visible must be at least 1")
	}

	if cfg.Cache.SearchTTL <= 0 {
		result.add("cache/search_ttl", "search_ttl must be positive")
	}
	if cfg.Cache.CurrentTTL <= 0 {
		result.add("cache/current_ttl", "current_ttl must be positive")
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		result.add("log/format", fmt.Sprintf("Unknown log format %q (want text or json)", cfg.Log.Format))
	}

	return result
}

// Validate loads the file at path and runs the semantic rules on it
func Validate(path string) (*ValidationResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg, err := New().Load(path)
	if err != nil {
		result := &ValidationResult{Valid: true, Errors: []ValidationError{}}
		result.add("syntax", fmt.Sprintf("Failed to parse config: %v", err))
		return result, nil
	}

	return Check(cfg), nil
}
