package schema

import "time"

// Reminder is a dated prompt attached to a board. DueAt is optional; an
// undated reminder behaves as a pinned todo.
type Reminder struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	DueAt     *time.Time `json:"due_at,omitempty"`
	Done      bool       `json:"done"`
	CreatedAt time.Time  `json:"created_at"`
}
