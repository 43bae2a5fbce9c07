package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kverlander/slate/internal/schema"
)

// DocumentStore reads and writes full board documents, one JSON file per
// board named by id under boards/.
type DocumentStore struct {
	dir string
}

// NewDocumentStore returns a store rooted at dataDir.
func NewDocumentStore(dataDir string) *DocumentStore {
	return &DocumentStore{dir: filepath.Join(dataDir, BoardsDirName)}
}

// Path returns the file path for the given board id.
func (s *DocumentStore) Path(id schema.BoardID) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.json", id))
}

// Exists reports whether a document file exists for id.
func (s *DocumentStore) Exists(id schema.BoardID) bool {
	_, err := os.Stat(s.Path(id))
	return err == nil
}

// Load reads and decodes the document for id. Returns ErrNotFound if no file
// exists, or a *DecodeError if the bytes cannot be decoded.
func (s *DocumentStore) Load(id schema.BoardID) (*schema.BoardDocument, error) {
	path := s.Path(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("board %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read board file %s: %w", path, err)
	}

	doc, err := schema.DecodeBoard(data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return doc, nil
}

// Save writes the document for id atomically. Saves are idempotent and
// last-writer-wins; a failed write leaves the previous on-disk content
// intact.
func (s *DocumentStore) Save(id schema.BoardID, doc *schema.BoardDocument) error {
	if doc.ID != id {
		return fmt.Errorf("document id %s does not match save target %s", doc.ID, id)
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("cannot save invalid board: %w", err)
	}

	data, err := schema.EncodeBoard(doc)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.Path(id), data); err != nil {
		return fmt.Errorf("failed to write board %s: %w", id, err)
	}
	return nil
}
