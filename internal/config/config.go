// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration of the contacts bridge. The variable names
// are unprefixed, e.g. PORT, DBHOST, DBUSER.
type Config struct {
	Port int `envconfig:"PORT" default:"8080"`

	DBHost     string `envconfig:"DBHOST" default:"localhost:3306"`
	DBUser     string `envconfig:"DBUSER"`
	DBPassword string `envconfig:"DBPWD"`
	DBName     string `envconfig:"DBNAME" default:"test"`

	// GinLogging turns HTTP request logging off when set to "off".
	GinLogging string `envconfig:"GIN_LOGGING" default:"on"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	// ContactsAppURL is the base URL of the contacts application. Without it,
	// launch requests are only logged.
	ContactsAppURL   string `envconfig:"CONTACTS_APP_URL"`
	PermissionPolicy string `envconfig:"PERMISSION_POLICY" default:"prompt"`
}

// New parses the environment and validates the result.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.DBHost, validation.Required),
		validation.Field(&c.DBUser, validation.Required),
		validation.Field(&c.DBName, validation.Required),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&c.ContactsAppURL, is.URL),
		validation.Field(&c.PermissionPolicy, validation.Required, validation.In("grant", "deny", "prompt")),
	)
}

// DSN returns the MySQL data source name.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", c.DBUser, c.DBPassword, c.DBHost, c.DBName)
}

// Address returns the HTTP listen address.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// RequestLogging reports whether gin should log every request.
func (c *Config) RequestLogging() bool {
	return !strings.EqualFold(c.GinLogging, "off")
}
