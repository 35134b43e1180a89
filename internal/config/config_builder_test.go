package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
	require.NotNil(t, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{FieldKey: testFieldKey, Version: "1.0.0"}},
		&StructuredConfig{App: App{Version: "2.0.0"}, Storage: Storage{DB: DB{DSN: "other.db"}}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, testFieldKey, cfg.App.FieldKey, "zero fields do not override")
	assert.Equal(t, "other.db", cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultHistoryRetention, cfg.Workers.HistoryRetention)
	assert.Equal(t, DefaultPruneInterval, cfg.Workers.PruneInterval)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withDefaults().withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_BadPathRecordsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/missing.json"})

	_, err := b.withJSON().build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_Priority(t *testing.T) {
	jsonPath := writeTempJSONConfig(t, map[string]any{
		"workers": map[string]any{"prune_interval": "5m"},
	})
	setEnvVars(t, map[string]string{
		"APP_FIELD_KEY":          testFieldKey,
		"STORAGE_DB_DSN":         "env.db",
		"WORKERS_PRUNE_INTERVAL": "2m",
		"CONFIG":                 jsonPath,
	})
	withArgs(t, "-d", "flag.db", "prune")

	cfg, err := GetStructuredConfig()

	require.NoError(t, err)
	assert.Equal(t, testFieldKey, cfg.App.FieldKey)
	assert.Equal(t, "flag.db", cfg.Storage.DB.DSN, "flags override env")
	assert.Equal(t, 5*time.Minute, cfg.Workers.PruneInterval, "json overrides env")
	assert.Equal(t, DefaultHistoryRetention, cfg.Workers.HistoryRetention)
}

func TestGetStructuredConfig_MissingKey(t *testing.T) {
	clearEnvVars(t)
	withArgs(t)

	_, err := GetStructuredConfig()

	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}
