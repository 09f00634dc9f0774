package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid
// values. It runs before any network activity so credential and
// target problems surface as configuration errors, not transport
// errors.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if c.Store.Project == "" {
		errors = append(errors, ValidationError{
			Field:   "store.project",
			Message: "target project is required",
		})
	}
	if c.Store.Token == "" {
		errors = append(errors, ValidationError{
			Field:   "store.token",
			Message: "bearer credential is required",
		})
	}
	if c.Store.Database == "" {
		errors = append(errors, ValidationError{
			Field:   "store.database",
			Message: "database identifier must not be empty",
		})
	}

	if c.Sampling.SampleSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "sampling.sample_size",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Sampling.SampleSize),
		})
	}
	if c.Sampling.MaxDepth < 0 {
		errors = append(errors, ValidationError{
			Field:   "sampling.max_depth",
			Message: fmt.Sprintf("must not be negative, got %d", c.Sampling.MaxDepth),
		})
	}

	if c.Output.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "output.path",
			Message: "output path is required",
		})
	}

	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q (expected debug, info, warn, or error)", c.Logging.Level),
		})
	}

	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q (expected json or text)", c.Logging.Format),
		})
	}

	return errors
}
