package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Config holds all configuration for a seed run.
type Config struct {
	// MongoDB Configuration
	MongoDBURI          string `env:"MONGODB_URI,required"`
	DatabaseName        string `env:"DATABASE_NAME" envDefault:"geo"`
	CitiesCollection    string `env:"CITIES_COLLECTION" envDefault:"cities"`
	CountriesCollection string `env:"COUNTRIES_COLLECTION" envDefault:"countries"`

	// Country the seeded cities point at. When CountryID is empty the country is
	// looked up by CountryNames, in order.
	CountryID     string        `env:"SEED_COUNTRY_ID"`
	CountryNames  []string      `env:"SEED_COUNTRY_NAMES" envSeparator:"," envDefault:"Perú,Peru"`
	VerifyCountry bool          `env:"SEED_VERIFY_COUNTRY" envDefault:"true"`
	Timeout       time.Duration `env:"SEED_TIMEOUT" envDefault:"30s"`

	Redis RedisConfig
	Log   LogConfig
}

// RedisConfig configures the optional seed event stream. Publishing is disabled
// while Host is empty.
type RedisConfig struct {
	Host      string `env:"REDIS_HOST"`
	Port      string `env:"REDIS_PORT" envDefault:"6379"`
	Password  string `env:"REDIS_PASSWORD"`
	Database  int    `env:"REDIS_DB" envDefault:"0"`
	Stream    string `env:"REDIS_STREAM" envDefault:"seed:events"`
	EnableTLS bool   `env:"REDIS_TLS" envDefault:"false"`
}

// LogConfig selects the logging backend and its output
type LogConfig struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	Format  string `env:"LOG_FORMAT" envDefault:"text"`
	Backend string `env:"LOG_BACKEND" envDefault:"logrus"`
}

// Enabled reports whether a Redis host was configured
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Host) != ""
}

// GetAddr returns host:port
func (r RedisConfig) GetAddr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

// LoadConfig loads configuration from environment variables and validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load configuration from environment: " + err.Error() +
			". Please ensure all required environment variables are set.")
	}
	if err := env.Parse(&cfg.Redis); err != nil {
		return nil, errors.New("failed to load redis configuration from environment: " + err.Error())
	}
	if err := env.Parse(&cfg.Log); err != nil {
		return nil, errors.New("failed to load log configuration from environment: " + err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values env.Parse cannot check by itself
func (c *Config) Validate() error {
	if strings.TrimSpace(c.MongoDBURI) == "" {
		return errors.New("mongodb_uri is required")
	}
	if c.DatabaseName == "" || c.CitiesCollection == "" || c.CountriesCollection == "" {
		return errors.New("database_name, cities_collection and countries_collection must not be empty")
	}
	if c.CountryID != "" {
		if _, err := primitive.ObjectIDFromHex(c.CountryID); err != nil {
			return fmt.Errorf("seed_country_id %q is not a valid ObjectId: %w", c.CountryID, err)
		}
	}
	c.CountryNames = compact(c.CountryNames)
	if c.CountryID == "" && len(c.CountryNames) == 0 {
		return errors.New("either seed_country_id or seed_country_names must be set")
	}
	if c.Timeout <= 0 {
		return errors.New("seed_timeout must be positive")
	}
	return nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
