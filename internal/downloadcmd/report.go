package downloadcmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig records the parameters a download ran with.
type RunConfig struct {
	ID        string `yaml:"id"`
	MediaType string `yaml:"mediatype"`
	Title     string `yaml:"title"`
	Mode      string `yaml:"mode"`
	Start     int    `yaml:"start"`
	Stop      int    `yaml:"stop"`
	Timestamp string `yaml:"timestamp"`
}

// PageResult is the per-page outcome of a run.
type PageResult struct {
	PageID     string  `yaml:"pageid"`
	Status     string  `yaml:"status"` // downloaded, skipped, failed
	Colorful   bool    `yaml:"colorful"`
	ColorShare float64 `yaml:"colorshare"`
	Enhanced   bool    `yaml:"enhanced"`
	Error      string  `yaml:"error,omitempty"`
}

// RunReport is the complete YAML report written next to the output PDFs.
type RunReport struct {
	Config     RunConfig    `yaml:"config"`
	Pages      []PageResult `yaml:"pages"`
	Downloaded int          `yaml:"downloaded"`
	Skipped    int          `yaml:"skipped"`
	Failed     int          `yaml:"failed"`
}

// Save writes the report as YAML.
func (r *RunReport) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}
	return nil
}
