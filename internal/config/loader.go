package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults.
// It uses the global viper instance so cobra flag bindings are picked up.
func Load() (*Config, error) {
	v := viper.GetViper()
	return loadFrom(v)
}

// LoadWithViper loads configuration from a fresh viper instance. Useful in
// tests that must not observe global flag bindings.
func LoadWithViper() (*Config, *viper.Viper, error) {
	v := viper.New()
	cfg, err := loadFrom(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func loadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	// Missing config file is fine; flags and env carry the run.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (GITHARVEST_*)
	v.SetEnvPrefix("GITHARVEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("gitbucket.url", "")
	v.SetDefault("gitbucket.token", "")
	v.SetDefault("gitbucket.read_interval", DefaultReadInterval)
	v.SetDefault("gitbucket.timeout", DefaultTimeout)

	v.SetDefault("output.records", DefaultRecordsPath)
	v.SetDefault("output.failures", DefaultFailuresPath)
	v.SetDefault("output.progress", false)

	v.SetDefault("cache.enabled", DefaultCacheEnabled)
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("cache.directory", CacheDir())

	v.SetDefault("roles.prefix", DefaultRolePrefix)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}
