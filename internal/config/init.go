package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# pkgship configuration
# Packages are published in the order listed. A package with an
# activation_prefix is only published when the triggering commit touched a
# path under that prefix; packages without one are always published.

staging:
  manifest_path: setup.py
  doc_path: README.md
  output_dir: dist

build:
  command: ["python", "-m", "build"]

upload:
  command: ["twine", "upload"]
  username_env: TWINE_USERNAME
  password_env: TWINE_PASSWORD

# Optional: retry transient upload failures.
# retry:
#   mode: linear
#   initial_seconds: 1
#   max_seconds: 30
#   max_retries: 2

packages:
  - name: full
    manifest: packaging/setup_full.py
  - name: core
    manifest: packaging/setup_core.py
    doc_override: packaging/README_core.md
  - name: storage
    manifest: packaging/setup_storage.py
    activation_prefix: storage/
`

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
