package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ServerPort:     "5000",
		DatabaseURL:    "postgres://localhost:5432/auth_demo",
		DBMaxConns:     10,
		DBMinConns:     2,
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		RequestTimeout: 30 * time.Second,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing secret", func(c *Config) { c.JWTSecret = "" }},
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }},
		{"empty port", func(c *Config) { c.ServerPort = "" }},
		{"zero ttl", func(c *Config) { c.JWTTTL = 0 }},
		{"zero request timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"zero max conns", func(c *Config) { c.DBMaxConns = 0 }},
		{"min above max", func(c *Config) { c.DBMinConns = 20 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/auth_demo")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/auth_demo")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_TTL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.JWTTTL, "unparsable duration falls back to default")
	assert.Equal(t, int32(10), cfg.DBMaxConns)
}
