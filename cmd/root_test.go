package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cachesim/cachesim/sim"
)

func TestVerbosePrinter_ReferenceFormat(t *testing.T) {
	// GIVEN a 16-set direct-mapped cache with 16-byte blocks and a verbose
	// observer: loads at 0x10 and 0x110 share set 1, the modify sits alone
	// in set 2
	var buf bytes.Buffer
	cache, err := sim.NewCache(sim.Geometry{SetIndexBits: 4, BlockOffsetBits: 4, Associativity: 1})
	require.NoError(t, err)
	replayer := sim.NewReplayer(cache, verbosePrinter(&buf))

	// WHEN the canonical miss/hit/eviction sequence replays
	replayer.ReplayRecord(sim.Record{Op: sim.OpLoad, Addr: 0x10, Size: 1})
	replayer.ReplayRecord(sim.Record{Op: sim.OpModify, Addr: 0x20, Size: 1})
	replayer.ReplayRecord(sim.Record{Op: sim.OpLoad, Addr: 0x110, Size: 1})
	replayer.ReplayRecord(sim.Record{Op: sim.OpInstr, Addr: 0x40, Size: 8})

	// THEN every replayed record is echoed with its labels, skips silently
	want := "L 10,1 miss\n" +
		"M 20,1 miss hit\n" +
		"L 110,1 miss eviction\n"
	assert.Equal(t, want, buf.String())
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()

	// Flag values and Changed markers survive across Execute calls; reset
	// every subcommand to its defaults so invocations stay independent.
	for _, sub := range rootCmd.Commands() {
		sub.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	// Capture stdout
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	rootCmd.SetArgs(args)
	execErr := rootCmd.Execute()

	// Restore stdout and read captured output
	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	require.NoError(t, execErr)
	return buf.String()
}

func TestRunCommand_EndToEnd(t *testing.T) {
	// The counters for this fixture are pinned by testdata/golden.json.
	tracePath := filepath.Join("..", "testdata", "traces", "simple.trace")

	out := runCLI(t, "run", "-s", "1", "-E", "1", "-b", "0", "-t", tracePath)
	assert.Equal(t, "hits:2 misses:3 evictions:2\n", out)

	out = runCLI(t, "run", "-s", "1", "-E", "1", "-b", "0", "-t", tracePath, "--json")
	assert.Contains(t, out, `"hits": 2`)
	assert.Contains(t, out, `"misses": 3`)
	assert.Contains(t, out, `"evictions": 2`)
	assert.Contains(t, out, `"loads": 3`)
	assert.Contains(t, out, `"modifies": 1`)
}

func TestRunCommand_VerboseEndToEnd(t *testing.T) {
	tracePath := filepath.Join("..", "testdata", "traces", "simple.trace")

	out := runCLI(t, "run", "-s", "1", "-E", "1", "-b", "0", "-t", tracePath, "-v")
	want := "L 0,1 miss\n" +
		"L 0,1 hit\n" +
		"L 2,1 miss eviction\n" +
		"M 0,1 miss eviction hit\n" +
		"hits:2 misses:3 evictions:2\n"
	assert.Equal(t, want, out)
}

func TestGenCommand_EndToEnd(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "gen.trace")
	runCLI(t, "gen", "--records", "50", "--seed", "7", "--address-bits", "12", "--out", outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := bytes.Count(data, []byte("\n"))
	assert.Equal(t, 50, lines)

	// Generation is deterministic: the same flags produce the same bytes.
	outPath2 := filepath.Join(t.TempDir(), "gen2.trace")
	runCLI(t, "gen", "--records", "50", "--seed", "7", "--address-bits", "12", "--out", outPath2)
	data2, err := os.ReadFile(outPath2)
	require.NoError(t, err)
	assert.Equal(t, data, data2)
}
