package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation error messages
var (
	ErrRequired         = errors.New("this field is required")
	ErrInvalidExtension = errors.New("extension must start with '.'")
	ErrInvalidFieldName = errors.New("field names cannot contain whitespace or '/'")
)

// ValidateRequired ensures a string value is not empty
func ValidateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

// ValidateDuration validates that a string can be parsed as a time.Duration
func ValidateDuration(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil // Empty is valid (will use default)
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration format (use: 30m, 24h, 168h): %w", err)
	}
	if d < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	return nil
}

// ValidateExtension accepts a file extension such as ".npz"
func ValidateExtension(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, ".") || len(s) == 1 {
		return ErrInvalidExtension
	}
	return nil
}

// ValidateFieldName accepts a single archive field name
func ValidateFieldName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.ContainsAny(s, " \t/") {
		return ErrInvalidFieldName
	}
	return nil
}

// ValidateFieldNames validates a newline separated list of field names
func ValidateFieldNames(s string) error {
	for i, line := range strings.Split(s, "\n") {
		if err := ValidateFieldName(line); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateLogLevel validates log level values
func ValidateLogLevel(s string) error {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log level: must be one of debug, info, warn, error")
}

// ValidateLogFormat validates log format values
func ValidateLogFormat(s string) error {
	switch strings.ToLower(s) {
	case "pretty", "json":
		return nil
	}
	return fmt.Errorf("invalid log format: must be pretty or json")
}
