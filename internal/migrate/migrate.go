// Package migrate converts the legacy single-board layout into the
// multi-board layout (index.json + boards/{id}.json).
//
// The legacy layout is one workspace.json file holding the entire board.
// Migration runs at most once: it is needed only while no index exists, and
// it finishes by writing the index, so a second run is a no-op regardless of
// whether the legacy file is still on disk. The legacy file itself is left
// untouched and becomes inert.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kverlander/slate/internal/schema"
	"github.com/kverlander/slate/internal/store"
)

// Options configures a migration run.
type Options struct {
	// DataDir is the root data directory.
	DataDir string
	// Backup writes a timestamped copy of the legacy file before migrating.
	Backup bool
	// Title names the migrated board. Empty means LegacyBoardTitle.
	Title string
}

// Result reports what a migration run did.
type Result struct {
	// Migrated is true if a legacy document was converted.
	Migrated bool
	// BoardID is the id allocated for the migrated board.
	BoardID schema.BoardID
	// BackupCreated is the path of the legacy backup, if one was written.
	BackupCreated string
}

// LegacyBoardTitle names the migrated board when the legacy document
// carries no title of its own.
const LegacyBoardTitle = "My Board"

// legacyPath returns the legacy single-board file path under dataDir.
func legacyPath(dataDir string) string {
	return filepath.Join(dataDir, store.LegacyFileName)
}

// Needed reports whether migration should run: no index exists and a legacy
// file does. Once the index is written this is false forever.
func Needed(dataDir string) bool {
	if _, err := os.Stat(filepath.Join(dataDir, store.IndexFileName)); err == nil {
		return false
	}
	_, err := os.Stat(legacyPath(dataDir))
	return err == nil
}

// Run converts the legacy document into the multi-board layout: it decodes
// workspace.json, writes it as boards/{id}.json, and writes a fresh index
// naming it the sole and active board. The legacy file is not modified.
//
// The document is written before the index, so a crash in between leaves an
// orphaned-but-intact document and a re-runnable migration rather than data
// loss.
func Run(opts Options) (*Result, error) {
	if !Needed(opts.DataDir) {
		return &Result{}, nil
	}

	src := legacyPath(opts.DataDir)
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy file %s: %w", src, err)
	}

	result := &Result{}
	if opts.Backup {
		backupPath := src + ".backup." + time.Now().Format("20060102-150405")
		if err := os.WriteFile(backupPath, data, 0600); err != nil {
			return nil, fmt.Errorf("failed to create backup: %w", err)
		}
		result.BackupCreated = backupPath
	}

	doc, err := schema.DecodeBoard(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode legacy document: %w", err)
	}

	// The legacy document predates board identity; allocate one.
	if doc.ID.IsZero() {
		doc.ID = schema.NewBoardID()
	}
	if doc.Title == "" || doc.Title == schema.DefaultBoardTitle {
		title := opts.Title
		if title == "" {
			title = LegacyBoardTitle
		}
		doc.Title = title
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = now
	}

	docs := store.NewDocumentStore(opts.DataDir)
	if err := docs.Save(doc.ID, doc); err != nil {
		return nil, fmt.Errorf("failed to write migrated board: %w", err)
	}

	ix := schema.NewBoardsIndex()
	ix.Register(doc.Meta())
	ix.ActiveBoardID = doc.ID
	if err := store.NewIndexStore(opts.DataDir).Save(ix); err != nil {
		return nil, fmt.Errorf("failed to write index: %w", err)
	}

	result.Migrated = true
	result.BoardID = doc.ID
	return result, nil
}
