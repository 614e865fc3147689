package tracefs

import (
	"fmt"
	"os"
	"path/filepath"
)

// candidateMounts is checked in order; the first directory that exists
// wins.
var candidateMounts = []string{
	"/sys/kernel/debug/tracing",
	"/sys/kernel/tracing",
}

// ErrNotAvailable is returned when neither tracefs mount candidate exists,
// or when a requested tracepoint has no format file under a mount that
// does exist. Callers should fall back to the static table (FallbackEvent)
// on this error.
type ErrNotAvailable struct {
	Path string
	Err  error
}

func (e *ErrNotAvailable) Error() string {
	return fmt.Sprintf("tracefs: tracepoint format not available at %s: %v", e.Path, e.Err)
}

func (e *ErrNotAvailable) Unwrap() error { return e.Err }

// Mount locates the tracefs mount point, preferring the debugfs-bundled
// path over the dedicated tracefs mount.
func Mount() (string, error) {
	for _, candidate := range candidateMounts {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}
	return "", &ErrNotAvailable{Path: candidateMounts[0], Err: os.ErrNotExist}
}

// ReadEvent reads and parses events/<category>/<name>/format and its
// sibling id file under the discovered tracefs mount.
func ReadEvent(category, name string) (*Event, error) {
	mount, err := Mount()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(mount, "events", category, name)

	idBytes, err := os.ReadFile(filepath.Join(dir, "id"))
	if err != nil {
		return nil, &ErrNotAvailable{Path: dir, Err: err}
	}
	formatBytes, err := os.ReadFile(filepath.Join(dir, "format"))
	if err != nil {
		return nil, &ErrNotAvailable{Path: dir, Err: err}
	}

	var id int
	if _, err := fmt.Sscanf(string(idBytes), "%d", &id); err != nil {
		return nil, &ErrNotAvailable{Path: dir, Err: err}
	}
	return ParseFormat(category, name, id, string(formatBytes))
}
