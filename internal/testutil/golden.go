// Package testutil provides shared test infrastructure for simbridge.
// It loads the golden line-trace dataset used by the modules and bridge tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenTraces represents the structure of testdata/golden_traces.json.
type GoldenTraces struct {
	Traces []GoldenTrace `json:"traces"`
}

// GoldenTrace is one module run: inputs are written after construction, the
// model is put through its reset sequence when Reset is set, then the context
// is stepped Steps times. Lines[0] is the trace before the first step and
// Lines[i] the trace after step i.
type GoldenTrace struct {
	Name   string            `json:"name"`
	Module string            `json:"module"`
	Inputs map[string]uint64 `json:"inputs"`
	Reset  bool              `json:"reset"`
	Steps  int               `json:"steps"`
	Lines  []string          `json:"lines"`
}

// LoadGoldenTraces loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: internal/testutil/ → testdata/.
func LoadGoldenTraces(t *testing.T) *GoldenTraces {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", "golden_traces.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden traces: %v", err)
	}

	var golden GoldenTraces
	if err := json.Unmarshal(data, &golden); err != nil {
		t.Fatalf("Failed to parse golden traces: %v", err)
	}
	for _, g := range golden.Traces {
		if len(g.Lines) != g.Steps+1 {
			t.Fatalf("golden trace %q: want %d lines for %d steps, got %d", g.Name, g.Steps+1, g.Steps, len(g.Lines))
		}
	}
	return &golden
}
