// Package config loads service settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Prefix namespaces every ADPULSE environment variable.
const Prefix = "ADPULSE_"

// ParseEnv loads configuration from environment variables. Field tags name
// variables without the ADPULSE_ prefix.
func ParseEnv(target any) error {
	return ParseEnvWith(target, nil)
}

// ParseEnvWith loads configuration from environ instead of the process
// environment when environ is non-nil.
func ParseEnvWith(target any, environ map[string]string) error {
	opts := env.Options{Prefix: Prefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
