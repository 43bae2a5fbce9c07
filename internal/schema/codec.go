package schema

import (
	"encoding/json"
	"fmt"
)

// rawObject is a JSON object split into its top-level fields. It is the
// substrate for tolerant decoding: fields are overlaid onto a defaulted
// value one key at a time, so absent keys simply keep their defaults.
type rawObject map[string]json.RawMessage

// splitObject parses data as a JSON object. Anything that is not an object
// at the top level is a hard decode failure.
func splitObject(data []byte) (rawObject, error) {
	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}
	// Unmarshal accepts a top-level null and leaves the map nil.
	if obj == nil {
		return nil, fmt.Errorf("malformed document: not a JSON object")
	}
	return obj, nil
}

// get unmarshals the first present key among name and aliases into v.
// Absent keys leave v untouched. A present key with a malformed value is an
// error; explicit null is treated as absent.
func (o rawObject) get(v any, name string, aliases ...string) error {
	for _, key := range append([]string{name}, aliases...) {
		raw, ok := o[key]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		return nil
	}
	return nil
}

// has reports whether any of the given keys is present and non-null.
func (o rawObject) has(keys ...string) bool {
	for _, key := range keys {
		if raw, ok := o[key]; ok && string(raw) != "null" {
			return true
		}
	}
	return false
}

// listOrSingle decodes a field that historically held one optional value
// under singleKey and now holds a list under listKey. The list form wins
// when both are present. The result is never nil.
func listOrSingle[T any](o rawObject, listKey, singleKey string) ([]T, error) {
	if o.has(listKey) {
		var list []T
		if err := o.get(&list, listKey); err != nil {
			return nil, err
		}
		if list == nil {
			list = []T{}
		}
		return list, nil
	}
	if o.has(singleKey) {
		var single T
		if err := o.get(&single, singleKey); err != nil {
			return nil, err
		}
		return []T{single}, nil
	}
	return []T{}, nil
}

// fieldSpec is one row of a declarative decode table: the current key, any
// legacy key spellings, and a pointer into the destination struct. One
// generic routine (overlayFields) drives every table; adding a schema field
// is a table row plus a default, not a new decode path.
type fieldSpec[T any] struct {
	key     string
	aliases []string
	target  func(*T) any
}

// overlayFields applies every table row whose key is present in obj onto
// dst. Rows with absent keys leave the preset default in place.
func overlayFields[T any](obj rawObject, dst *T, fields []fieldSpec[T]) error {
	for _, f := range fields {
		if err := obj.get(f.target(dst), f.key, f.aliases...); err != nil {
			return err
		}
	}
	return nil
}

// boardFields drives BoardDocument decoding. Legacy aliases: "items" was the
// entries key before the canvas rework, "stack_order" the z-order key.
var boardFields = []fieldSpec[BoardDocument]{
	{key: "id", target: func(d *BoardDocument) any { return &d.ID }},
	{key: "title", target: func(d *BoardDocument) any { return &d.Title }},
	{key: "created_at", target: func(d *BoardDocument) any { return &d.CreatedAt }},
	{key: "updated_at", target: func(d *BoardDocument) any { return &d.UpdatedAt }},
	{key: "entries", aliases: []string{"items"}, target: func(d *BoardDocument) any { return &d.Entries }},
	{key: "z_order", aliases: []string{"stack_order"}, target: func(d *BoardDocument) any { return &d.ZOrder }},
	{key: "chat", target: func(d *BoardDocument) any { return &d.Chat }},
	{key: "chat_history", target: func(d *BoardDocument) any { return &d.ChatHistory }},
	{key: "memories", target: func(d *BoardDocument) any { return &d.Memories }},
	{key: "reminders", target: func(d *BoardDocument) any { return &d.Reminders }},
	{key: "notes", target: func(d *BoardDocument) any { return &d.Notes }},
	{key: "calendar", target: func(d *BoardDocument) any { return &d.Calendar }},
	{key: "layout", target: func(d *BoardDocument) any { return &d.Layout }},
}

// entryFields drives Entry decoding. The images field is handled separately
// because of its single-vs-list legacy shape.
var entryFields = []fieldSpec[Entry]{
	{key: "id", target: func(e *Entry) any { return &e.ID }},
	{key: "kind", aliases: []string{"type"}, target: func(e *Entry) any { return &e.Kind }},
	{key: "x", target: func(e *Entry) any { return &e.X }},
	{key: "y", target: func(e *Entry) any { return &e.Y }},
	{key: "width", target: func(e *Entry) any { return &e.Width }},
	{key: "height", target: func(e *Entry) any { return &e.Height }},
	{key: "text", aliases: []string{"content"}, target: func(e *Entry) any { return &e.Text }},
	{key: "file", target: func(e *Entry) any { return &e.File }},
	{key: "url", target: func(e *Entry) any { return &e.URL }},
	{key: "created_at", target: func(e *Entry) any { return &e.CreatedAt }},
	{key: "updated_at", target: func(e *Entry) any { return &e.UpdatedAt }},
}

// chatMessageFields drives ChatMessage decoding; attachments handled
// separately (single-vs-list legacy shape).
var chatMessageFields = []fieldSpec[ChatMessage]{
	{key: "id", target: func(m *ChatMessage) any { return &m.ID }},
	{key: "role", target: func(m *ChatMessage) any { return &m.Role }},
	{key: "content", aliases: []string{"text"}, target: func(m *ChatMessage) any { return &m.Content }},
	{key: "created_at", target: func(m *ChatMessage) any { return &m.CreatedAt }},
}

// DecodeBoard parses a board document, tolerating any schema shape this
// store has ever written. Fields absent from the data take the defaults from
// DefaultBoardDocument. Malformed top-level structure or a malformed value
// under a known key is a hard failure.
func DecodeBoard(data []byte) (*BoardDocument, error) {
	obj, err := splitObject(data)
	if err != nil {
		return nil, err
	}

	doc := DefaultBoardDocument()
	if err := overlayFields(obj, doc, boardFields); err != nil {
		return nil, err
	}

	if doc.Entries == nil {
		doc.Entries = map[string]*Entry{}
	}
	normalizeZOrder(doc)
	return doc, nil
}

// EncodeBoard serializes a board document in the current schema. Every field
// is emitted, including ones holding defaults, so decode-then-encode
// upgrades old documents. Output is indented with stable key order for
// readable diffs.
func EncodeBoard(doc *BoardDocument) ([]byte, error) {
	canonicalize(doc)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board %s: %w", doc.ID, err)
	}
	return data, nil
}

// canonicalize replaces nil collections with empty ones so the encoded form
// never depends on how the document was built in memory.
func canonicalize(doc *BoardDocument) {
	if doc.Entries == nil {
		doc.Entries = map[string]*Entry{}
	}
	if doc.ZOrder == nil {
		doc.ZOrder = []string{}
	}
	if doc.Chat.Messages == nil {
		doc.Chat.Messages = []ChatMessage{}
	}
	for i := range doc.ChatHistory {
		if doc.ChatHistory[i].Messages == nil {
			doc.ChatHistory[i].Messages = []ChatMessage{}
		}
	}
	if doc.ChatHistory == nil {
		doc.ChatHistory = []ChatThread{}
	}
	if doc.Memories == nil {
		doc.Memories = []Memory{}
	}
	if doc.Reminders == nil {
		doc.Reminders = []Reminder{}
	}
	if doc.Notes.Areas == nil {
		doc.Notes.Areas = []Area{}
	}
	if doc.Calendar.Events == nil {
		doc.Calendar.Events = []CalendarEvent{}
	}
	for k, e := range doc.Entries {
		if e != nil && e.Images == nil {
			doc.Entries[k].Images = []AssetRef{}
		}
	}
	for i := range doc.Chat.Messages {
		if doc.Chat.Messages[i].Attachments == nil {
			doc.Chat.Messages[i].Attachments = []AssetRef{}
		}
	}
}
