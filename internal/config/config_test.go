package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDefaults(t *testing.T) {
	t.Helper()
	Config = Default()
	t.Cleanup(func() { Config = Default() })
}

func TestDefaults(t *testing.T) {
	withDefaults(t)
	require.NoError(t, LoadConfiguration(""))
	assert.Equal(t, "info", Config.Main.LogLevel)
	assert.Equal(t, "placeholder", Config.Build.Profile)
	assert.Equal(t, runtime.NumCPU(), Config.Build.Workers)
	assert.Equal(t, "none", Config.Build.Compression)
}

func TestLoadConfiguration(t *testing.T) {
	withDefaults(t)
	path := filepath.Join(t.TempDir(), "blurimg.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[main]
log_level = "debug"

[build]
profile = "detailed"
workers = 3
components_x = 5
components_y = 2
compression = "zstd"
incremental = true
`), 0o644))

	require.NoError(t, LoadConfiguration(path))
	assert.Equal(t, "debug", Config.Main.LogLevel)
	assert.Equal(t, "detailed", Config.Build.Profile)
	assert.Equal(t, 3, Config.Build.Workers)
	assert.Equal(t, 5, Config.Build.ComponentsX)
	assert.Equal(t, 2, Config.Build.ComponentsY)
	assert.Equal(t, "zstd", Config.Build.Compression)
	assert.True(t, Config.Build.Incremental)
	assert.Equal(t, "./blurimg_out", Config.Build.OutDir, "unset keys keep defaults")
}

func TestLoadConfiguration_Missing(t *testing.T) {
	withDefaults(t)
	err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
