package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rv32sim/rv32sim/pkg/rv32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesDefaultRegions(t *testing.T) {
	cfg := DefaultConfig()
	regions := cfg.Regions()
	want := rv32.DefaultRegions()
	require.Len(t, regions, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, regions[i].Name)
		assert.Equal(t, want[i].Begin, regions[i].Begin)
		assert.Equal(t, want[i].End, regions[i].End)
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rv32sim.toml")
	cfg := DefaultConfig()
	cfg.Execution.MaxCycles = 12345
	cfg.Execution.RemoteConsole = "127.0.0.1:9000"
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_cycles")
}
