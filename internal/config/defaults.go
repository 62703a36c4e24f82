package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	DefaultTimeout      = 30 * time.Second
	DefaultReadInterval = time.Duration(0)

	DefaultRecordsPath  = "-" // stdout
	DefaultFailuresPath = ""  // disabled

	DefaultCacheEnabled = false
	DefaultCacheTTL     = 24 * time.Hour

	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"

	DefaultRolePrefix = ""
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".githarvest"
	}
	return filepath.Join(home, ".githarvest")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// Default returns the default configuration. The URL and token have no
// defaults and must come from flags, the environment or a config file.
func Default() *Config {
	return &Config{
		GitBucket: GitBucketConfig{
			ReadInterval: DefaultReadInterval,
			Timeout:      DefaultTimeout,
		},
		Output: OutputConfig{
			Records:  DefaultRecordsPath,
			Failures: DefaultFailuresPath,
			Progress: false,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Roles: RoleConfig{
			Prefix: DefaultRolePrefix,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
