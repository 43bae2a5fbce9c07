package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// BoardMeta is the denormalized summary of one board held in the index so
// listings never need to load full documents.
type BoardMeta struct {
	ID        BoardID   `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardsIndex is the registry of all known boards and which one is active.
// The index is authoritative for which boards exist; a document file without
// an index entry is a tolerated orphan.
//
// Invariants: every listed id has a backing document; ActiveBoardID, if set,
// appears in Boards.
type BoardsIndex struct {
	ActiveBoardID BoardID     `json:"active_board_id,omitempty"`
	Boards        []BoardMeta `json:"boards"`
}

// NewBoardsIndex returns an empty index.
func NewBoardsIndex() *BoardsIndex {
	return &BoardsIndex{Boards: []BoardMeta{}}
}

// Find returns the metadata for id, if registered.
func (ix *BoardsIndex) Find(id BoardID) (BoardMeta, bool) {
	for _, m := range ix.Boards {
		if m.ID == id {
			return m, true
		}
	}
	return BoardMeta{}, false
}

// Contains reports whether id is registered.
func (ix *BoardsIndex) Contains(id BoardID) bool {
	_, ok := ix.Find(id)
	return ok
}

// Register adds meta to the index, replacing any existing entry with the
// same id in place (list order is preserved for stable listings).
func (ix *BoardsIndex) Register(meta BoardMeta) {
	for i, m := range ix.Boards {
		if m.ID == meta.ID {
			ix.Boards[i] = meta
			return
		}
	}
	ix.Boards = append(ix.Boards, meta)
}

// Unregister removes id from the index and clears the active pointer if it
// referenced id. Returns false if id was not registered.
func (ix *BoardsIndex) Unregister(id BoardID) bool {
	for i, m := range ix.Boards {
		if m.ID == id {
			ix.Boards = append(ix.Boards[:i], ix.Boards[i+1:]...)
			if ix.ActiveBoardID == id {
				ix.ActiveBoardID = ""
			}
			return true
		}
	}
	return false
}

// Validate checks the index invariants.
func (ix *BoardsIndex) Validate() error {
	seen := make(map[BoardID]bool, len(ix.Boards))
	for _, m := range ix.Boards {
		if m.ID.IsZero() {
			return fmt.Errorf("index entry with empty id")
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate index entry %s", m.ID)
		}
		seen[m.ID] = true
	}
	if !ix.ActiveBoardID.IsZero() && !seen[ix.ActiveBoardID] {
		return fmt.Errorf("active board %s is not registered", ix.ActiveBoardID)
	}
	return nil
}

// DecodeIndex parses an index document. Unlike board documents the index is
// self-healing at the store layer, so the only hard failure is malformed
// JSON or a violated invariant.
func DecodeIndex(data []byte) (*BoardsIndex, error) {
	obj, err := splitObject(data)
	if err != nil {
		return nil, err
	}

	ix := NewBoardsIndex()
	if err := obj.get(&ix.ActiveBoardID, "active_board_id", "active_board"); err != nil {
		return nil, err
	}
	if err := obj.get(&ix.Boards, "boards"); err != nil {
		return nil, err
	}
	if ix.Boards == nil {
		ix.Boards = []BoardMeta{}
	}
	if err := ix.Validate(); err != nil {
		return nil, err
	}
	return ix, nil
}

// EncodeIndex serializes the index with indentation and stable key order.
func EncodeIndex(ix *BoardsIndex) ([]byte, error) {
	if ix.Boards == nil {
		ix.Boards = []BoardMeta{}
	}
	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal index: %w", err)
	}
	return data, nil
}
