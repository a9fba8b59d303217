package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("DBUSER", "dirk")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, "dirk:@tcp(localhost:3306)/test?parseTime=true", cfg.DSN())
	assert.Equal(t, "prompt", cfg.PermissionPolicy)
	assert.True(t, cfg.RequestLogging())
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DBHOST", "db:3306")
	t.Setenv("DBUSER", "dirk")
	t.Setenv("DBPWD", "bullo92")
	t.Setenv("DBNAME", "contacts")
	t.Setenv("GIN_LOGGING", "OFF")
	t.Setenv("CONTACTS_APP_URL", "http://contacts.local:8000")
	t.Setenv("PERMISSION_POLICY", "grant")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Address())
	assert.Equal(t, "dirk:bullo92@tcp(db:3306)/contacts?parseTime=true", cfg.DSN())
	assert.False(t, cfg.RequestLogging())
	assert.Equal(t, "http://contacts.local:8000", cfg.ContactsAppURL)
}

func TestValidate(t *testing.T) {
	valid := Config{Port: 8080, DBHost: "localhost", DBUser: "u", DBName: "test", LogLevel: "info", PermissionPolicy: "deny"}
	require.NoError(t, valid.Validate())

	cases := map[string]func(c *Config){
		"port too large":    func(c *Config) { c.Port = 70000 },
		"missing user":      func(c *Config) { c.DBUser = "" },
		"unknown policy":    func(c *Config) { c.PermissionPolicy = "maybe" },
		"unknown level":     func(c *Config) { c.LogLevel = "loud" },
		"malformed app url": func(c *Config) { c.ContactsAppURL = "not a url" },
	}
	for name, mutate := range cases {
		c := valid
		mutate(&c)
		assert.Error(t, c.Validate(), name)
	}
}

func TestNewInvalidPort(t *testing.T) {
	t.Setenv("DBUSER", "dirk")
	t.Setenv("PORT", "eighty")

	_, err := New()
	assert.Error(t, err)
}
