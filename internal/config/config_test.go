package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hub")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, "hub-api", cfg.JWTIssuer)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadRequiredVars(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/hub")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadParsesOrigins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hub")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}
