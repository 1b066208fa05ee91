package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ResolveDictionaryPath locates the dictionary JSON file. An absolute path
// is taken as given; a relative one is tried against the working directory
// first and the executable directory second, so installed binaries and
// development checkouts both find their data. When no candidate exists the
// first candidate is returned for error reporting.
func ResolveDictionaryPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, path))
	}
	if execDir, err := GetExecutableDir(); err == nil {
		candidates = append(candidates, filepath.Join(execDir, path))
	}

	for _, candidate := range candidates {
		if FileExists(candidate) {
			log.Debugf("Resolved dictionary path: %s", candidate)
			return candidate
		}
		log.Debugf("Dictionary path candidate not found: %s", candidate)
	}

	if len(candidates) > 0 {
		return candidates[0]
	}
	return path
}
