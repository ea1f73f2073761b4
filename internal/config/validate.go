package config

import (
	"fmt"
	"strings"

	"chartgrid/internal/logging"
)

// ValidationError is one invalid setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid setting.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d invalid settings:", len(e))
	for _, err := range e {
		sb.WriteString("\n  ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validate checks every setting and returns all problems found.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	add := func(field string, value any, msg string) {
		errs = append(errs, ValidationError{Field: field, Value: value, Message: msg})
	}

	if c.Layout.MinPane <= 0 || c.Layout.MinPane > 50 {
		add("layout.min_pane", c.Layout.MinPane, "must be in (0, 50]")
	}
	if strings.TrimSpace(c.Layout.InitialSymbol) == "" {
		add("layout.initial_symbol", c.Layout.InitialSymbol, "must not be empty")
	}
	if c.Feed.TimeoutMs <= 0 {
		add("feed.timeout_ms", c.Feed.TimeoutMs, "must be positive")
	}
	if c.Feed.Points < 2 {
		add("feed.points", c.Feed.Points, "must be at least 2")
	}
	if !logging.ValidLevel(c.Logging.Level) {
		add("logging.level", c.Logging.Level, "must be one of "+strings.Join(logging.ValidLevels(), ", "))
	}
	return errs
}
