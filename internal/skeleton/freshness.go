package skeleton

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// syncMarker is stored inside .git, which git clean and CopyTree leave alone.
const syncMarker = "pytoapk-synced"

// WriteSyncMarker records the current time as the last synchronization of
// the checkout in dir.
func WriteSyncMarker(dir string) error {
	path := filepath.Join(dir, ".git", syncMarker)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	return os.WriteFile(path, []byte(ts), 0644)
}

// LastSynced returns the time of the last clone or update of dir, or the
// zero time when it is unknown.
func LastSynced(dir string) time.Time {
	data, err := os.ReadFile(filepath.Join(dir, ".git", syncMarker))
	if err != nil {
		return time.Time{}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

// IsStale reports whether dir was last synchronized more than maxAge ago.
// A checkout without a marker is stale.
func IsStale(dir string, maxAge time.Duration) bool {
	last := LastSynced(dir)
	if last.IsZero() {
		return true
	}
	return time.Since(last) > maxAge
}
