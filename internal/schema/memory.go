package schema

import (
	"strings"
	"time"
)

// MemoryCategory classifies how durable a memory is. The stored form is
// free text in older documents; NormalizeCategory folds every historical
// spelling onto one of three canonical values.
type MemoryCategory string

const (
	// MemoryShortTerm holds transient working context.
	MemoryShortTerm MemoryCategory = "short-term"
	// MemoryLongTerm holds durable context. Unrecognized category text
	// normalizes here.
	MemoryLongTerm MemoryCategory = "long-term"
	// MemoryCore holds facts that must never be rewritten. Historical
	// spellings include "unchangeable", "unchangable" and "immutable".
	MemoryCore MemoryCategory = "core"
)

// NormalizeCategory maps free-text category labels from any app release onto
// the canonical enum. Comparison ignores case, whitespace and punctuation.
// Unrecognized text falls back to MemoryLongTerm.
func NormalizeCategory(s string) MemoryCategory {
	key := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r
		}
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		// Drop spaces, hyphens, underscores and any other punctuation.
		return -1
	}, s)

	switch key {
	case "shortterm", "short":
		return MemoryShortTerm
	case "longterm", "long":
		return MemoryLongTerm
	case "core", "unchangeable", "unchangable", "immutable", "permanent":
		return MemoryCore
	default:
		return MemoryLongTerm
	}
}

// Memory is one remembered fact on a board.
type Memory struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Category  MemoryCategory `json:"category"`
	CreatedAt time.Time      `json:"created_at"`
}

// UnmarshalJSON decodes a memory and normalizes its category label.
func (m *Memory) UnmarshalJSON(data []byte) error {
	obj, err := splitObject(data)
	if err != nil {
		return err
	}

	type alias Memory
	var a alias
	if err := obj.get(&a.ID, "id"); err != nil {
		return err
	}
	if err := obj.get(&a.Text, "text", "content"); err != nil {
		return err
	}
	if err := obj.get(&a.CreatedAt, "created_at"); err != nil {
		return err
	}

	var category string
	if err := obj.get(&category, "category", "type"); err != nil {
		return err
	}
	a.Category = NormalizeCategory(category)

	*m = Memory(a)
	return nil
}
