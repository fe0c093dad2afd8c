// Package jobs runs several stall conversions described in one YAML file.
package jobs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OnFailureContinue lets the batch move on after a failed job.
const OnFailureContinue = "continue"

// File is a batch definition.
//
//	name: weekend-market
//	output_dir: listings
//	jobs:
//	  - id: saturday
//	    input: saturday.xlsx
//	  - id: sunday
//	    input: sunday.xlsx
//	    output_dir: listings/sunday
//	    sheet: Stalls
//	    on_failure: continue
type File struct {
	Name      string `yaml:"name" json:"name"`
	OutputDir string `yaml:"output_dir,omitempty" json:"outputDir,omitempty"`
	Jobs      []Job  `yaml:"jobs" json:"jobs"`
}

// Job is one workbook to convert.
type Job struct {
	ID        string `yaml:"id" json:"id"`
	Input     string `yaml:"input" json:"input"`
	OutputDir string `yaml:"output_dir,omitempty" json:"outputDir,omitempty"`
	Sheet     string `yaml:"sheet,omitempty" json:"sheet,omitempty"`
	OnFailure string `yaml:"on_failure,omitempty" json:"onFailure,omitempty"`
}

// LoadFile reads and validates a batch file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("job file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("could not read job file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a batch file from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid job YAML: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func validate(f *File) error {
	if f.Name == "" {
		return fmt.Errorf("job file is missing a 'name' field")
	}
	if len(f.Jobs) == 0 {
		return fmt.Errorf("job file %q has no jobs defined", f.Name)
	}

	seen := make(map[string]bool)
	for i, j := range f.Jobs {
		if j.ID == "" {
			return fmt.Errorf("job %d is missing an 'id' field", i+1)
		}
		if seen[j.ID] {
			return fmt.Errorf("duplicate job ID %q, each job must have a unique ID", j.ID)
		}
		seen[j.ID] = true

		if j.Input == "" {
			return fmt.Errorf("job %q is missing an 'input' field", j.ID)
		}
		switch j.OnFailure {
		case "", "stop", OnFailureContinue:
		default:
			return fmt.Errorf("job %q has on_failure %q, expected 'stop' or 'continue'", j.ID, j.OnFailure)
		}
	}
	return nil
}
