package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachesim/cachesim/sim/trace"
)

var (
	// CLI flags for the gen subcommand
	genRecords     int     // Number of records to generate
	genSeed        int64   // Seed for deterministic generation
	genAddressBits int     // Width of the generated address space
	genPattern     string  // Address pattern
	genStride      int     // Address step for the stride pattern
	genStoreRatio  float64 // Fraction of stores
	genModifyRatio float64 // Fraction of modifies
	genInstrRatio  float64 // Fraction of instruction fetches
	genOutPath     string  // Output file ("" = stdout)
)

// genCmd produces synthetic traces for experiments and fixtures
var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a synthetic memory trace in valgrind lackey format",
	Long: "Generate a deterministic synthetic memory trace. The same flags always " +
		"produce the same trace, so generated traces can serve as reproducible fixtures.",
	Run: func(cmd *cobra.Command, args []string) {
		spec := trace.GeneratorSpec{
			Records:     genRecords,
			Seed:        genSeed,
			AddressBits: genAddressBits,
			Pattern:     genPattern,
			Stride:      genStride,
			StoreRatio:  genStoreRatio,
			ModifyRatio: genModifyRatio,
			InstrRatio:  genInstrRatio,
		}
		recs, err := trace.Generate(spec)
		if err != nil {
			logrus.Fatalf("Trace generation failed: %v", err)
		}

		out := os.Stdout
		if genOutPath != "" {
			f, err := os.Create(genOutPath)
			if err != nil {
				logrus.Fatalf("Cannot create output file: %v", err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		if err := trace.WriteRecords(out, recs); err != nil {
			logrus.Fatalf("Cannot write trace: %v", err)
		}
	},
}

func init() {
	genCmd.Flags().IntVar(&genRecords, "records", 1000, "Number of records to generate")
	genCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed for deterministic generation")
	genCmd.Flags().IntVar(&genAddressBits, "address-bits", 32, "Generated addresses fit in this many bits")
	genCmd.Flags().StringVar(&genPattern, "pattern", "uniform", "Address pattern (uniform, sequential, stride)")
	genCmd.Flags().IntVar(&genStride, "stride", 64, "Address step for the stride pattern")
	genCmd.Flags().Float64Var(&genStoreRatio, "store-ratio", 0.2, "Fraction of records that are stores")
	genCmd.Flags().Float64Var(&genModifyRatio, "modify-ratio", 0.1, "Fraction of records that are modifies")
	genCmd.Flags().Float64Var(&genInstrRatio, "instr-ratio", 0.0, "Fraction of records that are instruction fetches")
	genCmd.Flags().StringVar(&genOutPath, "out", "", "Write the trace to this file instead of stdout")

	rootCmd.AddCommand(genCmd)
}
