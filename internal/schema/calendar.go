package schema

import "time"

// Calendar is the calendar workspace of a board.
type Calendar struct {
	Events []CalendarEvent `json:"events"`
}

// CalendarEvent is one scheduled event.
type CalendarEvent struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	AllDay   bool       `json:"all_day"`
	Notes    string     `json:"notes"`
}
