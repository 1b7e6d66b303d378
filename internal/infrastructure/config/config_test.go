package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "PantryChef", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "recipes", cfg.Search.Index)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.True(t, cfg.IsDevelopment())

	// Scoring defaults must match the engine's production parameters.
	assert.Equal(t, 5.0, cfg.Scoring.DiscoverUrgencyWeight)
	assert.Equal(t, 1.2, cfg.Scoring.SearchUrgencyWeight)
	assert.Equal(t, 1.5, cfg.Scoring.AvailabilityWeight)
	assert.Equal(t, "name.keyword", cfg.Scoring.CollapseField)
	assert.Equal(t, 50, cfg.Scoring.MaxResults)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PANTRYCHEF_SERVER_PORT", "9090")
	t.Setenv("PANTRYCHEF_SEARCH_URL", "http://search:9200")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://search:9200", cfg.Search.URL)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg, err = Load("")
	require.NoError(t, err)
	cfg.Scoring.MaxResults = 0
	assert.Error(t, cfg.Validate())
}
