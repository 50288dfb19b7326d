// Package testutil provides shared test infrastructure for the cache
// simulator: the golden dataset types and loader used by replay tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden.json.
type GoldenDataset struct {
	Cases []GoldenCase `json:"cases"`
}

// GoldenCase pins the exact counters one trace must produce under one
// cache geometry. The counters are hand-derived from the replacement
// policy's definition; any drift here is a correctness bug, not a
// tolerance question.
type GoldenCase struct {
	Name            string `json:"name"`
	Trace           string `json:"trace"` // path relative to testdata/
	SetIndexBits    int    `json:"set_index_bits"`
	BlockOffsetBits int    `json:"block_offset_bits"`
	Associativity   int    `json:"associativity"`
	Hits            uint64 `json:"hits"`
	Misses          uint64 `json:"misses"`
	Evictions       uint64 `json:"evictions"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	data, err := os.ReadFile(testdataPath(t, "golden.json"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Cases) == 0 {
		t.Fatal("Golden dataset contains no cases")
	}

	return &dataset
}

// TracePath resolves a trace path from the dataset to an absolute path
// under testdata/.
func TracePath(t *testing.T, rel string) string {
	t.Helper()
	return testdataPath(t, rel)
}

func testdataPath(t *testing.T, rel string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", rel)
}
