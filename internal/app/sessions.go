// Package app implements the legislative calendar generator: session-day
// expansion, block grouping and the ICS/CSV/JSON exporters.
package app

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoSessions          = errors.New("at least one session is required")
	ErrInvalidYear         = errors.New("year must be a four-digit year")
	ErrSessionMissingID    = errors.New("session id is required")
	ErrSessionMissingName  = errors.New("session name is required")
	ErrSessionPartialDates = errors.New("start_date and end_date must both be set or both be empty")
	ErrSessionDateOrder    = errors.New("start_date must not be after end_date")
	ErrDuplicateSessionID  = errors.New("duplicate session id")
	ErrInvalidRetryPolicy  = errors.New("publish.retry.max_attempts must not be negative")
)

// Config is the complete generator configuration, loaded from a YAML file.
type Config struct {
	Year     int           `yaml:"year"`
	Timezone string        `yaml:"timezone"`
	Publish  PublishConfig `yaml:"publish"`
	Sessions []Session     `yaml:"sessions"`
}

// PublishConfig defines where and how generated calendars are pushed.
type PublishConfig struct {
	Remote      string      `yaml:"remote"`
	Branch      string      `yaml:"branch"`
	Subdir      string      `yaml:"subdir"`
	CommitName  string      `yaml:"commit_name"`
	CommitEmail string      `yaml:"commit_email"`
	Retry       RetryPolicy `yaml:"retry"`
}

// RetryPolicy defines push retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
}

// LoadConfig loads and validates the session configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Year < 1000 || c.Year > 9999 {
		return ErrInvalidYear
	}

	if len(c.Sessions) == 0 {
		return ErrNoSessions
	}

	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}

	seen := make(map[string]bool)
	for i, s := range c.Sessions {
		if s.ID == "" {
			return fmt.Errorf("%w: sessions[%d]", ErrSessionMissingID, i)
		}
		if s.Name == "" {
			return fmt.Errorf("%w: sessions[%d]", ErrSessionMissingName, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateSessionID, s.ID)
		}
		seen[s.ID] = true

		if (s.StartDate == "") != (s.EndDate == "") {
			return fmt.Errorf("%w: %s", ErrSessionPartialDates, s.ID)
		}
		if s.StartDate == "" {
			continue
		}

		start, err := parseDate(s.StartDate)
		if err != nil {
			return fmt.Errorf("session %s: %s: %q", s.ID, ErrInvalidDateFormat, s.StartDate)
		}
		end, err := parseDate(s.EndDate)
		if err != nil {
			return fmt.Errorf("session %s: %s: %q", s.ID, ErrInvalidDateFormat, s.EndDate)
		}
		if start.After(end) {
			return fmt.Errorf("%w: %s", ErrSessionDateOrder, s.ID)
		}

		for _, r := range s.Recesses {
			if _, err := parseDate(r.Start); err != nil {
				return fmt.Errorf("session %s recess: %s: %q", s.ID, ErrInvalidDateFormat, r.Start)
			}
			if _, err := parseDate(r.End); err != nil {
				return fmt.Errorf("session %s recess: %s: %q", s.ID, ErrInvalidDateFormat, r.End)
			}
		}
	}

	if c.Publish.Retry.MaxAttempts < 0 {
		return ErrInvalidRetryPolicy
	}

	return nil
}

// Session returns the session with the given ID.
func (c *Config) Session(id string) (Session, bool) {
	for _, s := range c.Sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// FederalIDs returns the IDs of the federal chambers in config order.
func (c *Config) FederalIDs() []string {
	var ids []string
	for _, s := range c.Sessions {
		if s.Federal {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// StateIDs returns the IDs of all non-federal jurisdictions that have a
// session this year, sorted alphabetically.
func (c *Config) StateIDs() []string {
	var ids []string
	for _, s := range c.Sessions {
		if !s.Federal && s.StartDate != "" {
			ids = append(ids, s.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// AllIDs returns federal chambers followed by the sorted state IDs.
func (c *Config) AllIDs() []string {
	return append(c.FederalIDs(), c.StateIDs()...)
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 2; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	return time.Duration(delayMs) * time.Millisecond
}

// parseDate parses a YYYY-MM-DD date string.
// Dates use noon UTC to avoid timezone issues when formatting back.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}
