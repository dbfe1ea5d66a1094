// Package config loads service configuration from the process environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	return ParseEnviron(target, os.Environ())
}

// ParseEnviron loads configuration from a KEY=VALUE environment list, the
// shape returned by os.Environ. Entries without '=' are ignored.
func ParseEnviron(target any, environ []string) error {
	opts := env.Options{Environment: toMap(environ)}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func toMap(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(key) == "" {
			continue
		}
		values[key] = value
	}
	return values
}
