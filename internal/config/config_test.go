package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, ":8787", cfg.Server.Addr)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "static", cfg.Static.Dir)
	assert.False(t, cfg.Static.UseDisk)
}

func TestLoad_PartialFileKeepsDefaultsForRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bubbleboard.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9999\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "data", cfg.Storage.DataDir)
}

func TestLoad_BadYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bubbleboard.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
