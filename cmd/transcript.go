package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Transcript is the YAML record of a session written by run --transcript.
type Transcript struct {
	Module        string             `yaml:"module"`
	Seed          int64              `yaml:"seed"`
	RandomInputs  bool               `yaml:"random_inputs"`
	ReuseInstance bool               `yaml:"reuse_instance"`
	Records       []TranscriptRecord `yaml:"records"`
}

// TranscriptRecord is the state of the current instance after one step.
// Step 0 is the state right after the first Create.
type TranscriptRecord struct {
	Step       int               `yaml:"step"`
	TimeNs     int64             `yaml:"time_ns"`
	Generation uint64            `yaml:"generation"`
	Instance   uint64            `yaml:"instance"`
	Ports      map[string]uint64 `yaml:"ports"`
	Trace      string            `yaml:"trace,omitempty"`
}

// WriteFile encodes the transcript as YAML at path.
func (t *Transcript) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create transcript: %w", err)
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode transcript: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode transcript: %w", err)
	}
	return f.Close()
}

// LoadTranscript reads a transcript written by WriteFile. Unknown fields are
// rejected.
func LoadTranscript(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var t Transcript
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return &t, nil
}
