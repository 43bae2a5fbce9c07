package schema

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// BoardID is the opaque identity of a board document. IDs are never reused;
// a freshly created board always gets a new one.
type BoardID string

// NewBoardID allocates a new unique board identifier.
func NewBoardID() BoardID {
	return BoardID(uuid.NewString())
}

// String returns the identifier as a plain string.
func (id BoardID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset.
func (id BoardID) IsZero() bool {
	return id == ""
}

// EntryKind classifies a canvas entry.
type EntryKind string

const (
	// EntryText is a free-form text entry.
	EntryText EntryKind = "text"
	// EntryImage is an entry showing one or more stored images.
	EntryImage EntryKind = "image"
	// EntryFile is an entry referencing an arbitrary stored file.
	EntryFile EntryKind = "file"
	// EntryLink is an entry holding an external URL.
	EntryLink EntryKind = "link"
)

// Entry is one canvas object on a board.
//
// Images used to be a single optional reference under the "image" key; it is
// now a list under "images". Decoding accepts both shapes (see
// UnmarshalJSON), preferring the list when both are present.
type Entry struct {
	ID     string    `json:"id"`
	Kind   EntryKind `json:"kind"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`

	Text   string     `json:"text"`
	Images []AssetRef `json:"images"`
	File   *AssetRef  `json:"file,omitempty"`
	URL    string     `json:"url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnmarshalJSON decodes an entry, accepting the legacy single-image shape.
func (e *Entry) UnmarshalJSON(data []byte) error {
	obj, err := splitObject(data)
	if err != nil {
		return err
	}

	type alias Entry
	var a alias
	a.Kind = EntryText
	if err := overlayFields(obj, (*Entry)(&a), entryFields); err != nil {
		return err
	}

	images, err := listOrSingle[AssetRef](obj, "images", "image")
	if err != nil {
		return err
	}
	a.Images = images

	*e = Entry(a)
	return nil
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	// RoleUser is a message typed by the user.
	RoleUser ChatRole = "user"
	// RoleAssistant is a message produced by the assistant.
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one message in a chat thread. Attachments used to be a
// single optional reference under "attachment"; now a list under
// "attachments".
type ChatMessage struct {
	ID          string     `json:"id"`
	Role        ChatRole   `json:"role"`
	Content     string     `json:"content"`
	Attachments []AssetRef `json:"attachments"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UnmarshalJSON decodes a message, accepting the legacy single-attachment
// shape.
func (m *ChatMessage) UnmarshalJSON(data []byte) error {
	obj, err := splitObject(data)
	if err != nil {
		return err
	}

	type alias ChatMessage
	var a alias
	a.Role = RoleUser
	if err := overlayFields(obj, (*ChatMessage)(&a), chatMessageFields); err != nil {
		return err
	}

	attachments, err := listOrSingle[AssetRef](obj, "attachments", "attachment")
	if err != nil {
		return err
	}
	a.Attachments = attachments

	*m = ChatMessage(a)
	return nil
}

// ChatThread is one conversation: the live thread on the board plus archived
// threads in ChatHistory.
type ChatThread struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
}

// BoardDocument is the root aggregate for one board. It owns the canvas
// entries and their z-order, the chat thread and history, memories,
// reminders, the notes workspace, the calendar, and UI layout state.
//
// The z-order must be a permutation of the entry keys; decode repairs it
// (see normalizeZOrder) rather than failing.
type BoardDocument struct {
	ID        BoardID   `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Entries map[string]*Entry `json:"entries"`
	ZOrder  []string          `json:"z_order"`

	Chat        ChatThread   `json:"chat"`
	ChatHistory []ChatThread `json:"chat_history"`

	Memories  []Memory   `json:"memories"`
	Reminders []Reminder `json:"reminders"`

	Notes    NotesWorkspace `json:"notes"`
	Calendar Calendar       `json:"calendar"`
	Layout   Layout         `json:"layout"`
}

// DefaultBoardDocument returns a document with every optional field set to
// its named default. Decoding overlays stored fields onto this, so any field
// absent from older data ends up here, not at a zero value.
func DefaultBoardDocument() *BoardDocument {
	return &BoardDocument{
		Title:       DefaultBoardTitle,
		Entries:     map[string]*Entry{},
		ZOrder:      []string{},
		Chat:        ChatThread{Messages: []ChatMessage{}},
		ChatHistory: []ChatThread{},
		Memories:    []Memory{},
		Reminders:   []Reminder{},
		Notes:       DefaultNotesWorkspace(),
		Calendar:    Calendar{Events: []CalendarEvent{}},
		Layout:      DefaultLayout(),
	}
}

// DefaultBoardTitle names a board created without an explicit title.
const DefaultBoardTitle = "Untitled Board"

// Validate checks structural requirements before a document is persisted.
func (d *BoardDocument) Validate() error {
	if d.ID.IsZero() {
		return fmt.Errorf("id is required")
	}
	if d.Title == "" {
		return fmt.Errorf("title is required")
	}
	if d.CreatedAt.IsZero() {
		return fmt.Errorf("created_at is required")
	}
	if d.UpdatedAt.IsZero() {
		return fmt.Errorf("updated_at is required")
	}
	for id, entry := range d.Entries {
		if entry == nil {
			return fmt.Errorf("entry %s is null", id)
		}
		if entry.ID != id {
			return fmt.Errorf("entry key %s does not match entry id %s", id, entry.ID)
		}
	}
	return nil
}

// Filename returns the canonical filename for this board: {id}.json
func (d *BoardDocument) Filename() string {
	return fmt.Sprintf("%s.json", d.ID)
}

// Meta builds the index summary for this document.
func (d *BoardDocument) Meta() BoardMeta {
	return BoardMeta{
		ID:        d.ID,
		Title:     d.Title,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Touch sets UpdatedAt to the current time. Call whenever the document is
// mutated before saving.
func (d *BoardDocument) Touch() {
	d.UpdatedAt = time.Now().UTC()
}

// normalizeZOrder repairs the z-order so it is exactly a permutation of the
// entry keys: unknown ids are dropped, duplicates collapse to the first
// occurrence, and entries missing from the order are appended in key order.
func normalizeZOrder(d *BoardDocument) {
	seen := make(map[string]bool, len(d.ZOrder))
	order := make([]string, 0, len(d.Entries))
	for _, id := range d.ZOrder {
		if _, ok := d.Entries[id]; !ok || seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
	}

	var missing []string
	for id := range d.Entries {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	d.ZOrder = append(order, missing...)
}
