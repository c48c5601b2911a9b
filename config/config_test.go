package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dnaimage.db", c.DB)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
	assert.True(t, c.SkipHeader)
	assert.False(t, c.Progress)
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(file, []byte("db: pools.db\nworkers: 0\nskip-header: false\n"), 0o644))

	c, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "pools.db", c.DB)
	assert.Equal(t, 1, c.Workers)
	assert.False(t, c.SkipHeader)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("DNAIMAGE_WORKERS", "3")
	t.Setenv("DNAIMAGE_SKIP_HEADER", "false")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Workers)
	assert.False(t, c.SkipHeader)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
