// Package config loads the operator configuration for the prismops CLI.
//
// Connection settings (Prism Central endpoint and credentials) come from a
// flat key=value file, conventionally files/vars.txt. Deployment hardware
// defaults live in a Profile, optionally overridden from a YAML file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Config holds the Prism Central connection settings.
type Config struct {
	BaseURL  string
	Username string
	Password string
}

// Load reads a key=value configuration file. Blank lines and lines starting
// with '#' are ignored; the first '=' on a line splits key from value and
// both sides are trimmed.
func Load(path string) (*Config, error) {
	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{
		BaseURL:  values["baseUrl"],
		Username: values["username"],
		Password: values["password"],
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required connection settings are present.
func (c *Config) Validate() error {
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, "baseUrl")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration keys: %s", strings.Join(missing, ", "))
	}
	return nil
}
