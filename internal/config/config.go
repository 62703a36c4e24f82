package config

import (
	"strings"
	"time"

	"github.com/quantmind-br/githarvest-go/internal/domain"
)

// Config represents the application configuration
type Config struct {
	GitBucket GitBucketConfig `mapstructure:"gitbucket" yaml:"gitbucket"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache"`
	Roles     RoleConfig      `mapstructure:"roles" yaml:"roles"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// GitBucketConfig contains the connection settings for one harvest run.
// URL and Token are required; ReadInterval throttles outbound requests.
type GitBucketConfig struct {
	URL          string        `mapstructure:"url" yaml:"url"`
	Token        string        `mapstructure:"token" yaml:"token"`
	ReadInterval time.Duration `mapstructure:"read_interval" yaml:"read_interval"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// OutputConfig contains record and failure output settings
type OutputConfig struct {
	Records  string `mapstructure:"records" yaml:"records"`
	Failures string `mapstructure:"failures" yaml:"failures"`
	Progress bool   `mapstructure:"progress" yaml:"progress"`
}

// CacheConfig contains response cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// RoleConfig controls how user identities map to search roles
type RoleConfig struct {
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate checks required settings and normalizes the root URL. It must be
// called once before any network activity.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GitBucket.URL) == "" {
		return domain.NewValidationError("gitbucket.url", "root URL is required")
	}
	if strings.TrimSpace(c.GitBucket.Token) == "" {
		return domain.NewValidationError("gitbucket.token", "auth token is required")
	}
	if c.GitBucket.ReadInterval < 0 {
		return domain.NewValidationError("gitbucket.read_interval", "must be >= 0")
	}
	if !strings.HasSuffix(c.GitBucket.URL, "/") {
		c.GitBucket.URL += "/"
	}
	if c.GitBucket.Timeout < time.Second {
		c.GitBucket.Timeout = DefaultTimeout
	}
	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Output.Records == "" {
		c.Output.Records = DefaultRecordsPath
	}
	return nil
}
