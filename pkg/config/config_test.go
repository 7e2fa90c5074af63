package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1000, cfg.Engine.CacheSize)
	assert.True(t, cfg.Engine.SpellCheck)
	assert.Equal(t, 2, cfg.Engine.MaxEditDistance)
	assert.Equal(t, "\t", cfg.Dict.Delimiter)
	assert.Equal(t, "auto", cfg.Dict.Format)
	assert.InDelta(t, 0.7, cfg.Server.CorrectionThreshold, 1e-9)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[engine]
cache_size = 50
spell_check = false

[dict]
path = "/tmp/words.tsv"
sources = ["https://example.com/a.txt", "https://example.com/b.txt"]

[server]
correction_threshold = 0.5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Engine.CacheSize)
	assert.False(t, cfg.Engine.SpellCheck)
	assert.Equal(t, 2, cfg.Engine.MaxEditDistance, "unset keys keep defaults")
	assert.Equal(t, "/tmp/words.tsv", cfg.Dict.Path)
	assert.Len(t, cfg.Dict.Sources, 2)
	assert.InDelta(t, 0.5, cfg.Server.CorrectionThreshold, 1e-9)
	assert.Equal(t, 64, cfg.Server.MaxLimit)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[engine]
cache_size = "lots"
max_edit_distance = 1

[server]
max_limit = 5
correction_threshold = 1

[cli]
show_timing = false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Engine.CacheSize, "mistyped value falls back to default")
	assert.Equal(t, 1, cfg.Engine.MaxEditDistance)
	assert.Equal(t, 5, cfg.Server.MaxLimit)
	assert.InDelta(t, 1.0, cfg.Server.CorrectionThreshold, 1e-9, "integers are accepted for floats")
	assert.False(t, cfg.CLI.ShowTiming)
}

func TestLoadConfigUnparseable(t *testing.T) {
	path := writeConfig(t, "this is [not toml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Engine, again.Engine)
	assert.Equal(t, cfg.Server, again.Server)
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()

	size := 25
	spell := false
	require.NoError(t, cfg.Update(path, &size, nil, &spell))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25, loaded.Engine.CacheSize)
	assert.False(t, loaded.Engine.SpellCheck)
	assert.Equal(t, 2, loaded.Engine.MaxEditDistance)
}

func TestUpdateServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()

	limit := 30
	filter := false
	require.NoError(t, cfg.UpdateServer(path, &limit, &filter))
	assert.Equal(t, 30, cfg.Server.MaxLimit)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30, loaded.Server.MaxLimit)
	assert.False(t, loaded.Server.EnableFilter)

	// in memory only
	require.NoError(t, cfg.UpdateServer("", nil, nil))
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[engine]\ndefault_limit = 3\n")

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, cfg.Engine.DefaultLimit)
}
