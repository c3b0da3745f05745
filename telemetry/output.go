package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/dots/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir            string
	generationFile *os.File

	generationHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}

	return &OutputManager{dir: dir, generationFile: f}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGeneration appends a generation record to generations.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}

	records := []GenerationStats{stats}

	if !om.generationHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.generationFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
		om.generationHeaderWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, om.generationFile); err != nil {
		return fmt.Errorf("writing generation: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil || om.generationFile == nil {
		return nil
	}
	return om.generationFile.Close()
}
