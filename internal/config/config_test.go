package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
db:
  user: sim
  name: shopfloor
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "errors.log", cfg.ErrorLog)
	assert.Equal(t, "UTC", cfg.Location)
	assert.Equal(t, "localhost:4001", cfg.Address)
	assert.Equal(t, 4*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10000, cfg.MaxOrders)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
env: local
location: Europe/Berlin
http_server:
  address: 0.0.0.0:8080
  timeout: 10s
  allowed_origins:
    - http://planner.local
db:
  user: sim
  password: secret
  host: mysql
  port: 3307
  name: shopfloor
simulation:
  max_orders: 50
admin_login: admin
admin_pass_hash: $2a$04$abcdefghijklmnopqrstuu5s0Hh8aFQJ5gE4lP1h0d9mQ6bq3cZ2G
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, []string{"http://planner.local"}, cfg.AllowedOrigins)
	assert.Equal(t, "mysql", cfg.Host)
	assert.Equal(t, 3307, cfg.Port)
	assert.Equal(t, 50, cfg.MaxOrders)
	assert.Equal(t, "admin", cfg.AdminLogin)
	assert.Equal(t, "$2a$04$abcdefghijklmnopqrstuu5s0Hh8aFQJ5gE4lP1h0d9mQ6bq3cZ2G", cfg.AdminPassHash)

	loc, err := cfg.RunLocation()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing required db name", func(t *testing.T) {
		_, err := Load(writeConfig(t, "db:\n  user: sim\n"))
		assert.Error(t, err)
	})

	t.Run("unknown location", func(t *testing.T) {
		_, err := Load(writeConfig(t, "location: Mars/Olympus\ndb:\n  user: sim\n  name: x\n"))
		assert.ErrorContains(t, err, "Mars/Olympus")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
