package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("CLUBDIR_ENDPOINT", "https://backend.example.com/v1")
	t.Setenv("CLUBDIR_PROJECT_ID", "proj_123")
	t.Setenv("CLUBDIR_PLATFORM", "FHU Social Club")
	t.Setenv("CLUBDIR_DATABASE_ID", "db_main")
	t.Setenv("CLUBDIR_MEMBERS_COLLECTION", "members")
}

func TestLoad_AllRequiredPresent(t *testing.T) {
	setRequired(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://backend.example.com/v1", cfg.Endpoint)
	assert.Equal(t, "proj_123", cfg.ProjectID)
	assert.Equal(t, "members", cfg.MembersCollection)
	assert.Equal(t, "events", cfg.EventsCollection, "events collection defaults")
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_MissingRequiredValueNamesTheVariable(t *testing.T) {
	setRequired(t)
	t.Setenv("CLUBDIR_PROJECT_ID", "")

	_, err := Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLUBDIR_PROJECT_ID")
}

func TestLoad_ReportsEveryMissingValue(t *testing.T) {
	setRequired(t)
	t.Setenv("CLUBDIR_DATABASE_ID", "")
	t.Setenv("CLUBDIR_MEMBERS_COLLECTION", "")

	_, err := Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLUBDIR_DATABASE_ID")
	assert.Contains(t, err.Error(), "CLUBDIR_MEMBERS_COLLECTION")
}

func TestLoad_RejectsMalformedEndpoint(t *testing.T) {
	setRequired(t)
	t.Setenv("CLUBDIR_ENDPOINT", "not a url")

	_, err := Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLUBDIR_ENDPOINT")
}
