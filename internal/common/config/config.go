// internal/common/config/config.go
package config

import "fmt"

// Config is the root configuration for the assistant server.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Assistant     AssistantConfig     `mapstructure:"assistant"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout_seconds"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// GetDSN builds the lib/pq connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

type AssistantConfig struct {
	DefaultLocale   string         `mapstructure:"default_locale"`
	Locales         []string       `mapstructure:"locales"`
	PatternsPath    string         `mapstructure:"patterns_path"`
	CacheEnabled    bool           `mapstructure:"cache_enabled"`
	CacheTTLSeconds int            `mapstructure:"cache_ttl_seconds"`
	SearchEnabled   bool           `mapstructure:"search_enabled"`
	TieBreak        TieBreakConfig `mapstructure:"tie_break"`
}

// TieBreakConfig tunes the ambiguity resolution step of the
// classifier. Leaving it zero-valued keeps the compiled defaults.
type TieBreakConfig struct {
	ConfidentScore float64  `mapstructure:"confident_score"`
	AmbiguityGap   float64  `mapstructure:"ambiguity_gap"`
	Preferred      []string `mapstructure:"preferred"`
}

type NotificationsConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	AWSRegion   string `mapstructure:"aws_region"`
	SNSTopicARN string `mapstructure:"sns_topic_arn"`
	EmailFrom   string `mapstructure:"email_from"`
	EmailTo     string `mapstructure:"email_to"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Assistant.DefaultLocale == "" {
		return fmt.Errorf("assistant.default_locale is required")
	}
	found := false
	for _, l := range c.Assistant.Locales {
		if l == c.Assistant.DefaultLocale {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("assistant.default_locale %q is not in assistant.locales", c.Assistant.DefaultLocale)
	}
	if c.Notifications.Enabled && c.Notifications.AWSRegion == "" {
		return fmt.Errorf("notifications.aws_region is required when notifications are enabled")
	}
	return nil
}
