package schema

import "time"

// NotesWorkspace is the hierarchical notes surface of a board:
// areas -> stacks -> notebooks -> sections -> notes.
type NotesWorkspace struct {
	Areas []Area `json:"areas"`
}

// DefaultNotesWorkspace returns an empty workspace (no pre-created area; the
// UI creates one on first use).
func DefaultNotesWorkspace() NotesWorkspace {
	return NotesWorkspace{Areas: []Area{}}
}

// Area is the top level of the notes hierarchy.
type Area struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Stacks []Stack `json:"stacks"`
}

// Stack groups notebooks within an area.
type Stack struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Notebooks []Notebook `json:"notebooks"`
}

// Notebook groups sections within a stack.
type Notebook struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}

// Section groups notes within a notebook.
type Section struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Notes []Note `json:"notes"`
}

// Note is one leaf note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
