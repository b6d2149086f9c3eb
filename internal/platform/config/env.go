package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParsePrefixedEnv loads configuration from environment variables whose names
// are the struct tag prefixed with prefix.
func ParsePrefixedEnv(target any, prefix string) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse env %s*: %w", prefix, err)
	}
	return nil
}
