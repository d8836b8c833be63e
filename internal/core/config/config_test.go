package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), dataDir)
	require.NoError(t, err)

	want := DefaultConfig()
	want.DataDir = dataDir
	assert.Equal(t, &want, cfg)
}

func TestLoad_FileOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
time_format: 12h
markdown: true
poll_interval: 2s
theme:
  user_background: "#112233"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, "/data")
	require.NoError(t, err)

	assert.Equal(t, TimeFormat12h, cfg.TimeFormat)
	assert.True(t, cfg.Markdown)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, "#112233", cfg.Theme.UserBackground)
	assert.Equal(t, "#FFFFFF", cfg.Theme.UserForeground, "unset theme keys keep defaults")
	assert.Equal(t, 500, cfg.MaxMessages)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, filepath.Join("/data", "conversations"), cfg.ConversationsDir())
	assert.Equal(t, filepath.Join("/data", "history.json"), cfg.HistoryFile())
	assert.Equal(t, filepath.Join("/data", "read.json"), cfg.ReadMarkersFile())
	assert.Equal(t, 100, cfg.HistorySize)
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time_format: sundial\n"), 0o644))

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time_format: [\n"), 0o644))

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestConfig_Clock(t *testing.T) {
	cfg := DefaultConfig()

	cfg.TimeFormat = TimeFormat12h
	assert.True(t, cfg.Clock().Hour12)

	cfg.TimeFormat = TimeFormat24h
	cfg.Locale = "en_US"
	assert.False(t, cfg.Clock().Hour12, "explicit format wins over locale")

	cfg.TimeFormat = TimeFormatAuto
	assert.True(t, cfg.Clock().Hour12)

	cfg.Locale = "de_DE"
	assert.False(t, cfg.Clock().Hour12)

	cfg.Locale = ""
	t.Setenv("LC_ALL", "en_CA.UTF-8")
	assert.True(t, cfg.Clock().Hour12)
}
