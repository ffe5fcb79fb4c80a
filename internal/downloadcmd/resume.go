package downloadcmd

import (
	"os"
	"path/filepath"
)

// SnapshotDone reports which of pageIDs have a completed image file in dir.
// Partial files carry a different suffix and are never counted.
func SnapshotDone(dir string, pageIDs []string) map[string]bool {
	done := make(map[string]bool, len(pageIDs))
	for _, id := range pageIDs {
		if _, err := os.Stat(filepath.Join(dir, id+".jpg")); err == nil {
			done[id] = true
		}
	}
	return done
}

// ComputeResumePoint returns the index of the page after the highest-index
// page already marked done, or 0 when none are. It is a pure function of the
// snapshot so it can be tested without touching the filesystem.
func ComputeResumePoint(pageIDs []string, done map[string]bool) int {
	for i := len(pageIDs) - 1; i >= 0; i-- {
		if done[pageIDs[i]] {
			return i + 1
		}
	}
	return 0
}
