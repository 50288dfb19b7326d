package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cachesim/cachesim/sim"
)

// RunConfig is the YAML form of a full `run` invocation: the cache
// geometry, the trace to replay, and the output switches. Flags the user
// set explicitly override whatever the file says.
type RunConfig struct {
	Cache   GeometryConfig `yaml:"cache"`
	Trace   string         `yaml:"trace"`
	Verbose bool           `yaml:"verbose"`
	JSON    bool           `yaml:"json"`
}

// GeometryConfig mirrors sim.Geometry with YAML field names.
type GeometryConfig struct {
	SetIndexBits    int `yaml:"set_index_bits"`
	BlockOffsetBits int `yaml:"block_offset_bits"`
	Associativity   int `yaml:"associativity"`
}

// Geometry converts the YAML shape to the core type.
func (g GeometryConfig) Geometry() sim.Geometry {
	return sim.Geometry{
		SetIndexBits:    g.SetIndexBits,
		BlockOffsetBits: g.BlockOffsetBits,
		Associativity:   g.Associativity,
	}
}

// LoadRunConfig reads and parses a YAML run configuration file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &cfg, nil
}

// resolveRunConfig merges the optional config file with the run flags.
// Without a config file the flags are the configuration; with one, a flag
// contributes only when the user actually set it on the command line.
func resolveRunConfig(cmd *cobra.Command) *RunConfig {
	var cfg RunConfig
	fromFile := configPath != ""
	if fromFile {
		loaded, err := LoadRunConfig(configPath)
		if err != nil {
			logrus.Fatalf("Cannot load run config: %v", err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if !fromFile || flags.Changed("set-bits") {
		cfg.Cache.SetIndexBits = setIndexBits
	}
	if !fromFile || flags.Changed("block-bits") {
		cfg.Cache.BlockOffsetBits = blockOffsetBits
	}
	if !fromFile || flags.Changed("associativity") {
		cfg.Cache.Associativity = associativity
	}
	if !fromFile || flags.Changed("trace") {
		cfg.Trace = tracePath
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verboseMode
	}
	if flags.Changed("json") {
		cfg.JSON = jsonOutput
	}
	return &cfg
}
