// internal/common/config/loader.go
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from the given YAML file, layering
// environment variables on top (FA_SERVER_PORT overrides server.port).
// A .env file next to the binary is honored when present.
func Load(path string) (*Config, error) {
	// Best effort; production deployments use real env vars.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("FA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "finance-assistant")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.dbname", "finance")
	v.SetDefault("database.postgres.sslmode", "disable")

	v.SetDefault("database.redis.addr", "localhost:6379")
	v.SetDefault("database.redis.db", 0)

	v.SetDefault("database.elasticsearch.addresses", []string{"http://localhost:9200"})

	v.SetDefault("assistant.default_locale", "en")
	v.SetDefault("assistant.locales", []string{"en", "es"})
	v.SetDefault("assistant.patterns_path", "")
	v.SetDefault("assistant.cache_enabled", true)
	v.SetDefault("assistant.cache_ttl_seconds", 300)
	v.SetDefault("assistant.search_enabled", false)

	v.SetDefault("notifications.enabled", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
