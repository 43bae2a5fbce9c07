package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Names of the fixed files and directories under the data directory.
const (
	BoardsDirName    = "boards"
	AssetsDirName    = "assets"
	IndexFileName    = "index.json"
	SettingsFileName = "settings.json"
	// LegacyFileName is the pre-multi-board single-document file. Once the
	// index exists it is never read again.
	LegacyFileName = "workspace.json"
)

// writeFileAtomic writes data to path so that readers observe either the
// prior content or the new content, never a mix. The bytes are written to a
// temp file in the destination directory and renamed into place; rename is
// atomic on the file systems we support. Parent directories are created as
// needed.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
