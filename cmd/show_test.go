package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/simbridge/kernel"
)

func TestShowTranscript_RoundTripsARun(t *testing.T) {
	// GIVEN a transcript written by a two-step counter run
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := testConfig(t, map[string]string{"steps": "2", "transcript": path})
	require.NoError(t, runSession(kernel.NewContext(), cfg, nil))

	// WHEN the show command prints it
	var out bytes.Buffer
	showCmd.SetOut(&out)
	t.Cleanup(func() { showCmd.SetOut(nil) })
	require.NoError(t, showCmd.RunE(showCmd, []string{path}))

	// THEN a header and one line per record are printed
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "module=counter seed=42 random_inputs=false reuse_instance=false records=3", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  0 t=0ns gen=0 #"), lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "  2 t=2ns gen=0 #"), lines[3])
}

func TestShowTranscript_FallsBackToSortedPorts(t *testing.T) {
	// GIVEN a record without a line trace
	tr := &Transcript{
		Module: "register",
		Records: []TranscriptRecord{
			{Step: 1, TimeNs: 1, Instance: 4, Ports: map[string]uint64{"out": 7, "inp": 7}},
		},
	}

	// WHEN it is shown
	var out bytes.Buffer
	require.NoError(t, showTranscript(&out, tr))

	// THEN ports are listed by name
	assert.Contains(t, out.String(), "  1 t=1ns gen=0 #4: inp=7 out=7\n")
}

func TestShowCommand_RejectsUnknownFields(t *testing.T) {
	// GIVEN a transcript file with a field the format does not define
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("module: counter\nbogus: 1\n"), 0o644))

	// WHEN it is shown THEN decoding fails
	err := showCmd.RunE(showCmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode transcript")
}
