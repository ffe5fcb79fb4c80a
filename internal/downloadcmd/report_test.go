package downloadcmd

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRunReportSave(t *testing.T) {
	report := &RunReport{
		Config: RunConfig{
			ID:        "digibok_123",
			MediaType: "digibok",
			Title:     "Testboka",
			Mode:      "color",
			Start:     1,
			Stop:      3,
			Timestamp: "2026-08-25_12-00-00",
		},
		Pages: []PageResult{
			{PageID: "0001", Status: "downloaded", Colorful: false, ColorShare: 0.01, Enhanced: true},
			{PageID: "0002", Status: "downloaded", Colorful: true, ColorShare: 0.62},
			{PageID: "0003", Status: "failed", Error: "tile fetch: status 500"},
		},
		Downloaded: 2,
		Failed:     1,
	}

	path := filepath.Join(t.TempDir(), "run_report.yaml")
	if err := report.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	var loaded RunReport
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("failed to unmarshal report: %v", err)
	}

	if loaded.Config.Title != "Testboka" || loaded.Config.Mode != "color" {
		t.Errorf("config round trip: got %+v", loaded.Config)
	}
	if len(loaded.Pages) != 3 {
		t.Fatalf("pages: got %d, want 3", len(loaded.Pages))
	}
	if !loaded.Pages[1].Colorful || loaded.Pages[1].ColorShare != 0.62 {
		t.Errorf("colorful page round trip: got %+v", loaded.Pages[1])
	}
	if loaded.Pages[2].Error == "" {
		t.Error("failed page lost its error message")
	}
	if loaded.Downloaded != 2 || loaded.Failed != 1 {
		t.Errorf("counters: got %d/%d, want 2/1", loaded.Downloaded, loaded.Failed)
	}
}
