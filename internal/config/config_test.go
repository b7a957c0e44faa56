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
	path := filepath.Join(t.TempDir(), "host.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
scan_paths  = ["/opt/plugins", "/home/me/.vst3"]
sample_rate = 96000
block_size  = 1024
log_level   = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/plugins", "/home/me/.vst3"}, cfg.ScanPaths)
	assert.Equal(t, 96000.0, cfg.SampleRate)
	assert.Equal(t, int32(1024), cfg.BlockSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `block_size = 256`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(256), cfg.BlockSize)
	assert.Equal(t, Default().SampleRate, cfg.SampleRate)
	assert.Equal(t, Default().LogLevel, cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `sample_rate = -1`)
	_, err := Load(path)
	require.Error(t, err)

	path = writeConfig(t, `block_size = 0`)
	_, err = Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/no/such/config.hcl")
	require.Error(t, err)
}

func TestLoadMalformedHCL(t *testing.T) {
	path := writeConfig(t, `block_size = = 1`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}
