package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pkgship/internal/errors"
)

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just log it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyDefaults fills zero values with the conventional Python packaging layout.
func applyDefaults(config *Config) {
	if config.Staging.ManifestPath == "" {
		config.Staging.ManifestPath = "setup.py"
	}
	if config.Staging.DocPath == "" {
		config.Staging.DocPath = "README.md"
	}
	if config.Staging.OutputDir == "" {
		config.Staging.OutputDir = "dist"
	}
	if len(config.Build.Command) == 0 {
		config.Build.Command = []string{"python", "-m", "build"}
	}
	if len(config.Upload.Command) == 0 {
		config.Upload.Command = []string{"twine", "upload"}
	}
	if config.Upload.UsernameEnv == "" {
		config.Upload.UsernameEnv = "TWINE_USERNAME"
	}
	if config.Upload.PasswordEnv == "" {
		config.Upload.PasswordEnv = "TWINE_PASSWORD"
	}
}

// Validate checks invariants the rest of the pipeline relies on.
func Validate(config *Config) error {
	if len(config.Packages) == 0 {
		return errors.ValidationFailed("packages", "at least one package must be configured")
	}

	seen := make(map[string]bool, len(config.Packages))
	for i, pkg := range config.Packages {
		if pkg.Name == "" {
			return errors.ValidationFailed(fmt.Sprintf("packages[%d].name", i), "name is required")
		}
		if seen[pkg.Name] {
			return errors.ValidationFailed(fmt.Sprintf("packages[%d].name", i), "duplicate package name "+pkg.Name)
		}
		seen[pkg.Name] = true
		if pkg.Manifest == "" {
			return errors.ValidationFailed(fmt.Sprintf("packages[%d].manifest", i), "manifest is required")
		}
		// A manifest sitting at the staging target would read as a leftover
		// from a broken run and abort the whole plan.
		if filepath.Clean(pkg.Manifest) == filepath.Clean(config.Staging.ManifestPath) {
			return errors.ValidationFailed(fmt.Sprintf("packages[%d].manifest", i),
				"manifest must not be the staging target "+config.Staging.ManifestPath)
		}
		if pkg.DocOverride != "" && filepath.Clean(pkg.DocOverride) == filepath.Clean(config.Staging.DocPath) {
			return errors.ValidationFailed(fmt.Sprintf("packages[%d].doc_override", i),
				"doc override must not be the staging target "+config.Staging.DocPath)
		}
	}

	if config.Retry != nil && config.Retry.MaxRetries < 0 {
		return errors.ValidationFailed("retry.max_retries", "must not be negative")
	}

	return nil
}
