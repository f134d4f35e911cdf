package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(afero.NewMemMapFs(), "/nowhere/config.yml")
	require.NoError(t, err)

	assert.Equal(t, "/home/tester", cfg.HomeDir)
	assert.Equal(t, filepath.Join("/home/tester", ".smallsh_history"), cfg.HistoryFile)
	assert.Equal(t, DefaultHistorySize, cfg.HistorySize)
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.Equal(t, DefaultKillGrace, cfg.KillGrace)
	assert.True(t, cfg.UseColor())
	assert.False(t, cfg.Verbose)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/smallsh.yml", []byte(`
history_file: ~/hist
history_size: 10
home_dir: /srv
prompt: "$ "
kill_grace: 500ms
color: false
verbose: true
`), 0o644))

	cfg, err := Load(fsys, "/etc/smallsh.yml")
	require.NoError(t, err)

	assert.Equal(t, "/home/tester/hist", cfg.HistoryFile)
	assert.Equal(t, 10, cfg.HistorySize)
	assert.Equal(t, "/srv", cfg.HomeDir)
	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Equal(t, 500*time.Millisecond, cfg.KillGrace)
	assert.False(t, cfg.UseColor())
	assert.True(t, cfg.Verbose)
}

func TestLoadMalformedFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/bad.yml", []byte("prompt: [unterminated"), 0o644))

	_, err := Load(fsys, "/bad.yml")
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	t.Setenv(EnvConfig, "")
	assert.Equal(t, "/home/tester/.smallsh/config.yml", Path(""))

	t.Setenv(EnvConfig, "~/custom.yml")
	assert.Equal(t, "/home/tester/custom.yml", Path(""))

	assert.Equal(t, "/explicit.yml", Path("/explicit.yml"))
}
