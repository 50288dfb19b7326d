package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// scratchRunCommand builds an isolated command carrying the run flag set and
// parses args into it. Registration resets the package flag variables, so
// every call starts from defaults.
func scratchRunCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "run"}
	registerRunFlags(c)
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestLoadRunConfig_ParsesFullConfig(t *testing.T) {
	path := writeTempConfig(t, `
cache:
  set_index_bits: 4
  block_offset_bits: 4
  associativity: 2
trace: traces/mixed.trace
verbose: true
json: true
`)
	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Cache.SetIndexBits)
	assert.Equal(t, 4, cfg.Cache.BlockOffsetBits)
	assert.Equal(t, 2, cfg.Cache.Associativity)
	assert.Equal(t, "traces/mixed.trace", cfg.Trace)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.JSON)
}

func TestLoadRunConfig_RejectsUnknownKeys(t *testing.T) {
	path := writeTempConfig(t, `
cache:
  set_index_bitz: 4
`)
	_, err := LoadRunConfig(path)
	require.Error(t, err, "typos in config keys must not pass silently")
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestGeometryConfig_ConvertsToCoreType(t *testing.T) {
	g := GeometryConfig{SetIndexBits: 5, BlockOffsetBits: 6, Associativity: 8}.Geometry()
	assert.Equal(t, 5, g.SetIndexBits)
	assert.Equal(t, 6, g.BlockOffsetBits)
	assert.Equal(t, 8, g.Associativity)
}

func TestResolveRunConfig_FlagsOnly(t *testing.T) {
	c := scratchRunCommand(t, "-s", "4", "-E", "2", "-b", "3", "-t", "foo.trace")

	cfg := resolveRunConfig(c)
	assert.Equal(t, 4, cfg.Cache.SetIndexBits)
	assert.Equal(t, 2, cfg.Cache.Associativity)
	assert.Equal(t, 3, cfg.Cache.BlockOffsetBits)
	assert.Equal(t, "foo.trace", cfg.Trace)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.JSON)
}

func TestResolveRunConfig_ConfigFileOnly(t *testing.T) {
	path := writeTempConfig(t, `
cache:
  set_index_bits: 6
  block_offset_bits: 5
  associativity: 4
trace: from-file.trace
verbose: true
`)
	c := scratchRunCommand(t, "--config", path)

	cfg := resolveRunConfig(c)
	assert.Equal(t, 6, cfg.Cache.SetIndexBits)
	assert.Equal(t, 5, cfg.Cache.BlockOffsetBits)
	assert.Equal(t, 4, cfg.Cache.Associativity)
	assert.Equal(t, "from-file.trace", cfg.Trace)
	assert.True(t, cfg.Verbose, "file-provided verbose must survive when the flag is untouched")
}

func TestResolveRunConfig_ExplicitFlagsOverrideFile(t *testing.T) {
	path := writeTempConfig(t, `
cache:
  set_index_bits: 6
  block_offset_bits: 5
  associativity: 4
trace: from-file.trace
`)
	c := scratchRunCommand(t, "--config", path, "-s", "1", "-t", "from-flag.trace")

	cfg := resolveRunConfig(c)
	assert.Equal(t, 1, cfg.Cache.SetIndexBits, "explicit flag wins over the file")
	assert.Equal(t, 5, cfg.Cache.BlockOffsetBits, "untouched flag defers to the file")
	assert.Equal(t, 4, cfg.Cache.Associativity)
	assert.Equal(t, "from-flag.trace", cfg.Trace)
}

func TestResolveRunConfig_BoolFlagsOverrideFileOnlyWhenSet(t *testing.T) {
	path := writeTempConfig(t, `
cache:
  set_index_bits: 2
  associativity: 1
trace: t.trace
verbose: true
json: true
`)
	c := scratchRunCommand(t, "--config", path, "--verbose=false")

	cfg := resolveRunConfig(c)
	assert.False(t, cfg.Verbose, "explicit --verbose=false must override the file")
	assert.True(t, cfg.JSON, "untouched json flag defers to the file")
}
