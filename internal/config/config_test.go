package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.App.Env)
	assert.Equal(t, "America/Sao_Paulo", cfg.App.Timezone)
	assert.Equal(t, "8081", cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Registry.TimeoutSeconds)
	assert.Equal(t, 1000, cfg.RabbitMQ.DedupSize)
	assert.True(t, cfg.IsLocal())
	assert.False(t, cfg.IsNotLocal())
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("REGISTRY_URL", "https://sai.example.com/api/v1")
	t.Setenv("REGISTRY_TOKEN", "abc123")
	t.Setenv("AUTH_BASIC_CLIENTS", "recepcao:segredo,supervisor:outra")

	cfg, err := NewConfig()
	require.NoError(t, err)

	// Environment is lowercased for comparison.
	assert.Equal(t, EnvProduction, cfg.App.Env)
	assert.True(t, cfg.IsNotLocal())
	assert.Equal(t, "https://sai.example.com/api/v1", cfg.Registry.URL)
	assert.Equal(t, "abc123", cfg.Registry.Token)

	require.Len(t, cfg.Auth.BasicClients, 2)
	assert.Equal(t, "recepcao", cfg.Auth.BasicClients[0].Username)
	assert.Equal(t, "segredo", cfg.Auth.BasicClients[0].Password)
	assert.Equal(t, "supervisor", cfg.Auth.BasicClients[1].Username)
}

func TestMalformedClientPairsAreSkipped(t *testing.T) {
	t.Setenv("AUTH_BASIC_CLIENTS", "ok:pair,broken,also:fine")

	cfg, err := NewConfig()
	require.NoError(t, err)

	require.Len(t, cfg.Auth.BasicClients, 2)
	assert.Equal(t, "ok", cfg.Auth.BasicClients[0].Username)
	assert.Equal(t, "also", cfg.Auth.BasicClients[1].Username)
}
