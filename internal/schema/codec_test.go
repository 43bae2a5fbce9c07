package schema

import (
	"bytes"
	"reflect"
	"testing"
	"time"
)

// fixedTime returns a deterministic timestamp with no monotonic component so
// round-tripped values compare equal.
func fixedTime(hour int) time.Time {
	return time.Date(2026, 3, 14, hour, 30, 0, 0, time.UTC)
}

func sampleDocument() *BoardDocument {
	doc := DefaultBoardDocument()
	doc.ID = "board-1"
	doc.Title = "Research"
	doc.CreatedAt = fixedTime(9)
	doc.UpdatedAt = fixedTime(10)
	doc.Entries = map[string]*Entry{
		"e1": {
			ID:        "e1",
			Kind:      EntryText,
			X:         10,
			Y:         20,
			Width:     200,
			Height:    100,
			Text:      "hello",
			Images:    []AssetRef{},
			CreatedAt: fixedTime(9),
			UpdatedAt: fixedTime(9),
		},
		"e2": {
			ID:     "e2",
			Kind:   EntryImage,
			Images: []AssetRef{{StoredFilename: "abc.png", OriginalName: "cat.png"}},
			CreatedAt: fixedTime(9),
			UpdatedAt: fixedTime(9),
		},
	}
	doc.ZOrder = []string{"e2", "e1"}
	doc.Memories = []Memory{
		{ID: "m1", Text: "likes tea", Category: MemoryLongTerm, CreatedAt: fixedTime(9)},
	}
	doc.Chat.Messages = []ChatMessage{
		{ID: "c1", Role: RoleUser, Content: "hi", Attachments: []AssetRef{}, CreatedAt: fixedTime(9)},
	}
	return doc
}

func TestRoundTripStability(t *testing.T) {
	doc := sampleDocument()

	data, err := EncodeBoard(doc)
	if err != nil {
		t.Fatalf("EncodeBoard() error = %v", err)
	}
	decoded, err := DecodeBoard(data)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	if !reflect.DeepEqual(decoded, doc) {
		t.Errorf("decode(encode(x)) != x\ngot:  %+v\nwant: %+v", decoded, doc)
	}

	// Once a document is in the current schema, re-encoding is stable.
	data2, err := EncodeBoard(decoded)
	if err != nil {
		t.Fatalf("EncodeBoard() second pass error = %v", err)
	}
	if !bytes.Equal(data, data2) {
		t.Errorf("encode(decode(encode(x))) != encode(x)")
	}
}

func TestDecodeAppliesDefaults(t *testing.T) {
	// A minimal document from an early release: most fields absent.
	data := []byte(`{
		"id": "board-1",
		"created_at": "2026-03-14T09:30:00Z",
		"updated_at": "2026-03-14T09:30:00Z"
	}`)

	doc, err := DecodeBoard(data)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}

	if doc.Title != DefaultBoardTitle {
		t.Errorf("Title = %q, want %q", doc.Title, DefaultBoardTitle)
	}
	if doc.Entries == nil || len(doc.Entries) != 0 {
		t.Errorf("Entries = %v, want empty map", doc.Entries)
	}
	if doc.ZOrder == nil || len(doc.ZOrder) != 0 {
		t.Errorf("ZOrder = %v, want empty slice", doc.ZOrder)
	}
	if doc.Memories == nil {
		t.Errorf("Memories is nil, want empty slice")
	}
	if doc.Reminders == nil {
		t.Errorf("Reminders is nil, want empty slice")
	}
	if doc.Notes.Areas == nil {
		t.Errorf("Notes.Areas is nil, want empty slice")
	}
	if doc.Calendar.Events == nil {
		t.Errorf("Calendar.Events is nil, want empty slice")
	}

	want := DefaultLayout()
	if doc.Layout != want {
		t.Errorf("Layout = %+v, want defaults %+v", doc.Layout, want)
	}
}

func TestDecodeLayoutPartial(t *testing.T) {
	// A document written before zoom existed: present layout keys apply,
	// absent ones keep their defaults.
	data := []byte(`{
		"id": "board-1",
		"layout": {"sidebar_width": 320, "sidebar_visible": false}
	}`)

	doc, err := DecodeBoard(data)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	if doc.Layout.SidebarWidth != 320 {
		t.Errorf("SidebarWidth = %v, want 320", doc.Layout.SidebarWidth)
	}
	if doc.Layout.SidebarVisible {
		t.Errorf("SidebarVisible = true, want false")
	}
	if doc.Layout.ZoomLevel != 1.0 {
		t.Errorf("ZoomLevel = %v, want default 1.0", doc.Layout.ZoomLevel)
	}
	if doc.Layout.ActiveTab != "canvas" {
		t.Errorf("ActiveTab = %q, want default %q", doc.Layout.ActiveTab, "canvas")
	}
}

func TestDecodeLegacySingleImage(t *testing.T) {
	legacy := []byte(`{
		"id": "board-1",
		"entries": {
			"e1": {"id": "e1", "kind": "image", "image": {"stored_filename": "abc.png"}}
		}
	}`)
	current := []byte(`{
		"id": "board-1",
		"entries": {
			"e1": {"id": "e1", "kind": "image", "images": [{"stored_filename": "abc.png"}]}
		}
	}`)

	legacyDoc, err := DecodeBoard(legacy)
	if err != nil {
		t.Fatalf("DecodeBoard(legacy) error = %v", err)
	}
	currentDoc, err := DecodeBoard(current)
	if err != nil {
		t.Fatalf("DecodeBoard(current) error = %v", err)
	}

	if !reflect.DeepEqual(legacyDoc.Entries["e1"].Images, currentDoc.Entries["e1"].Images) {
		t.Errorf("legacy single-image decode = %+v, want %+v",
			legacyDoc.Entries["e1"].Images, currentDoc.Entries["e1"].Images)
	}
	if len(legacyDoc.Entries["e1"].Images) != 1 {
		t.Fatalf("Images length = %d, want 1", len(legacyDoc.Entries["e1"].Images))
	}
}

func TestDecodeListWinsOverSingle(t *testing.T) {
	data := []byte(`{
		"id": "board-1",
		"entries": {
			"e1": {
				"id": "e1",
				"kind": "image",
				"image": {"stored_filename": "old.png"},
				"images": [{"stored_filename": "new1.png"}, {"stored_filename": "new2.png"}]
			}
		}
	}`)

	doc, err := DecodeBoard(data)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	images := doc.Entries["e1"].Images
	if len(images) != 2 || images[0].StoredFilename != "new1.png" {
		t.Errorf("Images = %+v, want the list form to win", images)
	}
}

func TestDecodeLegacyAliases(t *testing.T) {
	// "items" and "stack_order" were the pre-rework keys.
	data := []byte(`{
		"id": "board-1",
		"items": {
			"e1": {"id": "e1", "type": "text", "content": "old keys"}
		},
		"stack_order": ["e1"]
	}`)

	doc, err := DecodeBoard(data)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	entry, ok := doc.Entries["e1"]
	if !ok {
		t.Fatalf("entry e1 missing, entries = %+v", doc.Entries)
	}
	if entry.Kind != EntryText {
		t.Errorf("Kind = %q, want %q (via legacy \"type\" key)", entry.Kind, EntryText)
	}
	if entry.Text != "old keys" {
		t.Errorf("Text = %q, want %q (via legacy \"content\" key)", entry.Text, "old keys")
	}
	if !reflect.DeepEqual(doc.ZOrder, []string{"e1"}) {
		t.Errorf("ZOrder = %v, want [e1]", doc.ZOrder)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{{{{`},
		{name: "top-level array", data: `[1, 2, 3]`},
		{name: "top-level string", data: `"hello"`},
		{name: "top-level null", data: `null`},
		{name: "bad value under known key", data: `{"id": "b", "entries": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeBoard([]byte(tt.data)); err == nil {
				t.Errorf("DecodeBoard(%q) succeeded, want error", tt.data)
			}
		})
	}
}

func TestDecodeRepairsZOrder(t *testing.T) {
	tests := []struct {
		name   string
		zOrder string
		want   []string
	}{
		{
			name:   "unknown id dropped",
			zOrder: `["e1", "ghost", "e2"]`,
			want:   []string{"e1", "e2"},
		},
		{
			name:   "missing id appended",
			zOrder: `["e2"]`,
			want:   []string{"e2", "e1"},
		},
		{
			name:   "duplicate collapsed",
			zOrder: `["e1", "e1", "e2"]`,
			want:   []string{"e1", "e2"},
		},
		{
			name:   "absent order rebuilt in key order",
			zOrder: `[]`,
			want:   []string{"e1", "e2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`{
				"id": "board-1",
				"entries": {
					"e1": {"id": "e1"},
					"e2": {"id": "e2"}
				},
				"z_order": ` + tt.zOrder + `
			}`)
			doc, err := DecodeBoard(data)
			if err != nil {
				t.Fatalf("DecodeBoard() error = %v", err)
			}
			if !reflect.DeepEqual(doc.ZOrder, tt.want) {
				t.Errorf("ZOrder = %v, want %v", doc.ZOrder, tt.want)
			}
		})
	}
}

func TestDecodeLegacyChatAttachment(t *testing.T) {
	data := []byte(`{
		"id": "board-1",
		"chat": {
			"id": "t1",
			"messages": [
				{"id": "c1", "role": "assistant", "text": "see attached",
				 "attachment": {"stored_filename": "doc.pdf"}}
			]
		}
	}`)

	doc, err := DecodeBoard(data)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	if len(doc.Chat.Messages) != 1 {
		t.Fatalf("Messages length = %d, want 1", len(doc.Chat.Messages))
	}
	msg := doc.Chat.Messages[0]
	if msg.Content != "see attached" {
		t.Errorf("Content = %q, want %q (via legacy \"text\" key)", msg.Content, "see attached")
	}
	if len(msg.Attachments) != 1 || msg.Attachments[0].StoredFilename != "doc.pdf" {
		t.Errorf("Attachments = %+v, want single doc.pdf", msg.Attachments)
	}
}

func TestEncodeUpgradesOldDocument(t *testing.T) {
	old := []byte(`{"id": "board-1", "title": "Old"}`)

	doc, err := DecodeBoard(old)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	data, err := EncodeBoard(doc)
	if err != nil {
		t.Fatalf("EncodeBoard() error = %v", err)
	}

	// The upgraded document must carry the full current schema.
	for _, key := range []string{`"entries"`, `"z_order"`, `"chat"`, `"memories"`, `"reminders"`, `"notes"`, `"calendar"`, `"layout"`} {
		if !bytes.Contains(data, []byte(key)) {
			t.Errorf("upgraded document missing %s", key)
		}
	}
}
