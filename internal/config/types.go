package config

// Config is the root configuration for a publish run.
type Config struct {
	Staging  StagingConfig   `yaml:"staging"`
	Build    BuildConfig     `yaml:"build"`
	Upload   UploadConfig    `yaml:"upload"`
	Retry    *RetryConfig    `yaml:"retry,omitempty"`
	Packages []PackageConfig `yaml:"packages"`
}

// StagingConfig describes the shared staging locations inside the working tree.
// All paths are relative to the working tree root.
type StagingConfig struct {
	ManifestPath string `yaml:"manifest_path"` // where the build tool expects the active manifest
	DocPath      string `yaml:"doc_path"`      // top-level documentation file consumed by the build
	OutputDir    string `yaml:"output_dir"`    // where the build tool writes artifacts
}

// BuildConfig describes the external build tool invocation.
type BuildConfig struct {
	Command []string `yaml:"command"` // argv; run in the working tree root
}

// UploadConfig describes the external upload tool invocation.
// Credentials are passed via the named environment variables, never on the
// command line.
type UploadConfig struct {
	Command     []string `yaml:"command"` // argv; artifact paths are appended
	UsernameEnv string   `yaml:"username_env,omitempty"`
	PasswordEnv string   `yaml:"password_env,omitempty"`
}

// RetryBackoffMode enumerates supported backoff growth modes.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

// RetryConfig holds optional upload retry knobs. Absent means single attempt.
type RetryConfig struct {
	Mode           RetryBackoffMode `yaml:"mode,omitempty"`
	InitialSeconds int              `yaml:"initial_seconds,omitempty"`
	MaxSeconds     int              `yaml:"max_seconds,omitempty"`
	MaxRetries     int              `yaml:"max_retries"`
}

// PackageConfig describes one publishable package. Order in the config file
// defines evaluation and publish order.
type PackageConfig struct {
	Name             string `yaml:"name"`
	Manifest         string `yaml:"manifest"`
	DocOverride      string `yaml:"doc_override,omitempty"`
	ActivationPrefix string `yaml:"activation_prefix,omitempty"` // publish unconditionally if empty
}
