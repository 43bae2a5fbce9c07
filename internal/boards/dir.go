package boards

import (
	"os"
	"path/filepath"
)

// DataDirName is the per-project data directory name searched for by
// FindDataDir.
const DataDirName = ".slate"

// FindDataDir resolves the data directory: an explicit path wins, then the
// SLATE_DATA_DIR environment variable, then a .slate directory found by
// walking up from the working directory, then ~/.slate.
func FindDataDir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("SLATE_DATA_DIR"); env != "" {
		return env
	}

	if cwd, err := os.Getwd(); err == nil {
		dir := cwd
		for {
			candidate := filepath.Join(dir, DataDirName)
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				return candidate
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return DataDirName
	}
	return filepath.Join(home, DataDirName)
}
