// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Directory  DirectoryConfig  `mapstructure:"directory"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	MaxBodyBytes    int64  `mapstructure:"max_body_bytes"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // single address shortcut
}

// GetURL returns the URL field or the first address.
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Species directory ---

// Directory source kinds.
const (
	SourcePostgres      = "postgres"
	SourceElasticsearch = "elasticsearch"
	SourceFile          = "file"
)

// DirectoryConfig selects where the species catalog is read from.
type DirectoryConfig struct {
	Source  string `mapstructure:"source"`
	Table   string `mapstructure:"table"`
	Index   string `mapstructure:"index"`
	Path    string `mapstructure:"path"`
	MaxRows int    `mapstructure:"max_rows"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// --- External classifier ---

type ClassifierConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"model"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens"`
	ImageDetail     string `mapstructure:"image_detail"`
	Timeout         int    `mapstructure:"timeout"` // milliseconds
}

// --- Rate limiting ---

type RateLimitConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Requests int    `mapstructure:"requests"`
	Window   int    `mapstructure:"window"` // milliseconds
	Prefix   string `mapstructure:"prefix"`
	// TrustedProxies are CIDRs or IPs allowed to set X-Forwarded-For.
	// Empty means the peer address is always used.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MissingCredentials lists required external-service settings that are
// absent. A non-empty result does not stop the process: identification
// requests are answered with a configuration fault until it is fixed.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.Classifier.APIKey == "" {
		missing = append(missing, "classifier.api_key")
	}
	if c.Classifier.BaseURL == "" {
		missing = append(missing, "classifier.base_url")
	}

	switch c.Directory.Source {
	case SourcePostgres:
		if c.Database.Postgres.Host == "" {
			missing = append(missing, "database.postgres.host")
		}
		if c.Database.Postgres.User == "" {
			missing = append(missing, "database.postgres.user")
		}
		if c.Database.Postgres.Database == "" {
			missing = append(missing, "database.postgres.database")
		}
	case SourceElasticsearch:
		if c.Database.Elasticsearch.GetURL() == "" {
			missing = append(missing, "database.elasticsearch.addresses")
		}
	case SourceFile:
		if c.Directory.Path == "" {
			missing = append(missing, "directory.path")
		}
	}
	return missing
}
