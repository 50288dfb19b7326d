package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachesim/cachesim/sim"
	"github.com/cachesim/cachesim/sim/trace"
)

var (
	// CLI flags for the run subcommand. The single-letter shorthands
	// (-s -E -b -t -v) are the conventional cache-simulator getopt surface.
	setIndexBits    int    // Number of set index bits (cache has 2^s sets)
	blockOffsetBits int    // Number of block offset bits (blocks are 2^b bytes)
	associativity   int    // Number of lines per set
	tracePath       string // Trace file to replay
	verboseMode     bool   // Echo per-record classifications
	jsonOutput      bool   // Emit the summary as JSON
	configPath      string // Optional YAML run configuration
	logLevel        string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cachesim",
	Short: "Trace-driven simulator for set-associative LRU caches",
}

// runCmd replays a memory trace against a cache built from the flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a memory trace and report hit/miss/eviction counts",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := resolveRunConfig(cmd)
		geom := cfg.Cache.Geometry()

		// Geometry problems must surface before the trace is touched.
		cache, err := sim.NewCache(geom)
		if err != nil {
			logrus.Fatalf("Cannot build cache: %v", err)
		}
		if cfg.Trace == "" {
			logrus.Fatalf("No trace file given; use --trace or a config file")
		}

		var observer sim.Observer
		if cfg.Verbose {
			observer = verbosePrinter(os.Stdout)
		}
		replayer := sim.NewReplayer(cache, observer)

		f, err := trace.OpenFile(cfg.Trace)
		if err != nil {
			logrus.Fatalf("Cannot open trace: %v", err)
		}
		defer func() { _ = f.Close() }()

		logrus.Infof("Replaying %s through a %d-set %d-way cache with %d-byte blocks",
			cfg.Trace, geom.NumSets(), geom.Associativity, geom.BlockSize())

		if err := replayer.Replay(f); err != nil {
			logrus.Fatalf("Trace replay failed: %v", err)
		}
		if n := f.SkippedLines(); n > 0 {
			logrus.Warnf("Skipped %d unparseable trace lines", n)
		}

		summary := sim.Summarize(cache, replayer)
		if cfg.JSON {
			err = summary.WriteJSON(os.Stdout)
		} else {
			err = summary.WriteText(os.Stdout)
		}
		if err != nil {
			logrus.Fatalf("Cannot write summary: %v", err)
		}
	},
}

// verbosePrinter builds the observer behind -v: every replayed record is
// echoed with its classification labels in replay order, one line per
// record, e.g.
//
//	L 10,1 miss
//	M 20,1 miss hit
//	L 12,1 miss eviction
func verbosePrinter(w io.Writer) sim.Observer {
	return sim.ObserverFunc(func(rec sim.Record, results []sim.Result) {
		labels := make([]string, 0, 3)
		for _, res := range results {
			switch {
			case res.Hit:
				labels = append(labels, "hit")
			case res.Evicted:
				labels = append(labels, "miss", "eviction")
			default:
				labels = append(labels, "miss")
			}
		}
		fmt.Fprintf(w, "%s %s\n", trace.FormatRecord(rec), strings.Join(labels, " "))
	})
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags binds the run flag set to the package flag variables.
// Registration resets every bound variable to its default.
func registerRunFlags(c *cobra.Command) {
	c.Flags().IntVarP(&setIndexBits, "set-bits", "s", 0, "Number of set index bits (the cache has 2^s sets)")
	c.Flags().IntVarP(&associativity, "associativity", "E", 0, "Number of lines per set")
	c.Flags().IntVarP(&blockOffsetBits, "block-bits", "b", 0, "Number of block offset bits (blocks are 2^b bytes)")
	c.Flags().StringVarP(&tracePath, "trace", "t", "", "Valgrind lackey trace file to replay")
	c.Flags().BoolVarP(&verboseMode, "verbose", "v", false, "Echo each record with its hit/miss classification")
	c.Flags().BoolVar(&jsonOutput, "json", false, "Emit the summary as JSON instead of the single counters line")
	c.Flags().StringVar(&configPath, "config", "", "YAML run configuration (explicit flags override file values)")
	c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd)

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
