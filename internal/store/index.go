package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kverlander/slate/internal/schema"
)

// IndexStore reads and writes the boards registry (index.json).
//
// The index is self-healing: if the file is absent or fails to decode, Load
// persists and returns a fresh empty index instead of failing. Callers that
// need legacy-layout migration must check for it before the first Load,
// since self-healing creates the index file.
type IndexStore struct {
	path string
}

// NewIndexStore returns an index store rooted at dataDir.
func NewIndexStore(dataDir string) *IndexStore {
	return &IndexStore{path: filepath.Join(dataDir, IndexFileName)}
}

// Path returns the index file path.
func (s *IndexStore) Path() string {
	return s.path
}

// Exists reports whether the index file exists.
func (s *IndexStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the index, healing an absent or undecodable file into a fresh
// empty index that is immediately persisted.
func (s *IndexStore) Load() (*schema.BoardsIndex, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.heal(nil)
		}
		return nil, fmt.Errorf("failed to read index %s: %w", s.path, err)
	}

	ix, err := schema.DecodeIndex(data)
	if err != nil {
		return s.heal(err)
	}
	return ix, nil
}

// heal persists and returns a fresh empty index. decodeErr is non-nil when
// an existing file could not be decoded.
func (s *IndexStore) heal(decodeErr error) (*schema.BoardsIndex, error) {
	if decodeErr != nil {
		log.Printf("index %s is unreadable, resetting to empty: %v", s.path, decodeErr)
	}
	ix := schema.NewBoardsIndex()
	if err := s.Save(ix); err != nil {
		return nil, err
	}
	return ix, nil
}

// Save writes the index atomically.
func (s *IndexStore) Save(ix *schema.BoardsIndex) error {
	if err := ix.Validate(); err != nil {
		return fmt.Errorf("cannot save invalid index: %w", err)
	}
	data, err := schema.EncodeIndex(ix)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}
