package elfsym

import (
	"fmt"
	"os"
	"path/filepath"
)

// librarySearchPaths is checked in order for every name/suffix
// combination FindLibrary tries.
var librarySearchPaths = []string{
	"/lib/x86_64-linux-gnu",
	"/lib64",
	"/usr/lib/x86_64-linux-gnu",
	"/usr/lib64",
	"/lib/aarch64-linux-gnu",
	"/usr/lib/aarch64-linux-gnu",
}

// librarySuffixes is the set of filename shapes a bare library name
// (e.g. "c", "ssl") expands to.
var librarySuffixes = []string{
	"%s.so.6",
	"%s.so",
	"lib%s.so.6",
	"lib%s.so",
}

// FindLibrary scans the common library search paths for name under each
// of the conventional suffix/prefix combinations, returning the first
// match's full path.
func FindLibrary(name string) (string, bool) {
	for _, dir := range librarySearchPaths {
		for _, suffix := range librarySuffixes {
			candidate := filepath.Join(dir, fmt.Sprintf(suffix, name))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
		// A bare, unmodified name is also a valid match (e.g. a
		// versionless symlink or a statically-named binary).
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
