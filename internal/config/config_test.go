package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_KEY", "test-admin")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "web/templates/*.html", cfg.Server.TemplatesGlob)
	assert.Equal(t, BackendSQLite, cfg.History.Backend)
	assert.Equal(t, "farm_calc.db", cfg.History.SQLitePath)
	assert.Equal(t, "https://restcountries.com", cfg.Countries.BaseURL)
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.Calculator.UseLatitudeProfile)
}

func TestLoadRequiresAdminKey(t *testing.T) {
	t.Setenv("ADMIN_KEY", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_KEY")
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("ADMIN_KEY", "test-admin")
	t.Setenv("HISTORY_BACKEND", "cassandra")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported history backend")
}

func TestLoadMongoBackendNeedsURI(t *testing.T) {
	t.Setenv("ADMIN_KEY", "test-admin")
	t.Setenv("HISTORY_BACKEND", BackendMongoDB)
	t.Setenv("MONGODB_URI", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestLoadMongoBackend(t *testing.T) {
	t.Setenv("ADMIN_KEY", "test-admin")
	t.Setenv("HISTORY_BACKEND", BackendMongoDB)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendMongoDB, cfg.History.Backend)
	assert.Equal(t, "greencalc", cfg.History.MongoDBName)
}

func TestLoadRejectsHalfConfiguredSheets(t *testing.T) {
	t.Setenv("ADMIN_KEY", "test-admin")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/tmp/creds.json")
	t.Setenv("GOOGLE_SHEET_EXPORT_ID", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be set together")
}

func TestLoadLatitudeProfileToggle(t *testing.T) {
	t.Setenv("ADMIN_KEY", "test-admin")
	t.Setenv("USE_LATITUDE_PROFILE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Calculator.UseLatitudeProfile)
}
