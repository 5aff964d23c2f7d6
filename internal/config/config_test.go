package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH0_DOMAIN", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "")

	cfg := Load()

	assert.Equal(t, ":8000", cfg.HTTP.Addr)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:19006"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 10*time.Minute, cfg.Auth.JWKSCacheTTL)
	assert.False(t, cfg.Auth.Configured())
	assert.False(t, cfg.MQTT.Enabled)
}

func TestLoad_AuthDomainNormalized(t *testing.T) {
	t.Setenv("AUTH0_DOMAIN", "https://tenant.example.auth0.com/")
	t.Setenv("AUTH0_AUDIENCE", "https://api.roommait.app")

	cfg := Load()

	assert.True(t, cfg.Auth.Configured())
	assert.Equal(t, "https://tenant.example.auth0.com/", cfg.Auth.Issuer())
	assert.Equal(t, "https://tenant.example.auth0.com/.well-known/jwks.json", cfg.Auth.JWKSURL())
	assert.Equal(t, "https://api.roommait.app", cfg.Auth.Audience)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "9090")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestParseDuration_InvalidFallsBack(t *testing.T) {
	assert.Equal(t, time.Second, parseDuration("soon", time.Second))
	assert.Equal(t, time.Second, parseDuration("-5s", time.Second))
	assert.Equal(t, 2*time.Minute, parseDuration("2m", time.Second))
}
