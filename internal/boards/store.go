package boards

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kverlander/slate/internal/migrate"
	"github.com/kverlander/slate/internal/schema"
	"github.com/kverlander/slate/internal/store"
)

// Store is the persistence facade. One Store owns one data directory.
//
// Store performs no internal locking: a single logical session owner per
// board is assumed, and callers serialize writes to one document upstream
// (the app debounces saves). Writes block on file I/O.
type Store struct {
	dataDir  string
	docs     *store.DocumentStore
	index    *store.IndexStore
	assets   *store.AssetStore
	settings *store.SettingsStore
}

// Open returns a Store rooted at dataDir.
func Open(dataDir string) *Store {
	return &Store{
		dataDir:  dataDir,
		docs:     store.NewDocumentStore(dataDir),
		index:    store.NewIndexStore(dataDir),
		assets:   store.NewAssetStore(dataDir),
		settings: store.NewSettingsStore(dataDir),
	}
}

// DataDir returns the root data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

// Assets returns the asset store for this data directory.
func (s *Store) Assets() *store.AssetStore {
	return s.assets
}

// Documents returns the low-level document store. Most callers should use
// the facade operations instead.
func (s *Store) Documents() *store.DocumentStore {
	return s.docs
}

// loadIndex loads the registry, running the legacy migration first if this
// is a pre-multi-board data directory. Migration is idempotent: once the
// index exists, Needed is false forever.
func (s *Store) loadIndex() (*schema.BoardsIndex, error) {
	if migrate.Needed(s.dataDir) {
		result, err := migrate.Run(migrate.Options{DataDir: s.dataDir})
		if err != nil {
			return nil, fmt.Errorf("legacy migration failed: %w", err)
		}
		if result.Migrated {
			log.Printf("migrated legacy workspace to board %s", result.BoardID)
		}
	}
	return s.index.Load()
}

// DefaultBoardID returns the board a fresh session should open: the active
// board if set, else the first registered board, else a newly created one.
// The returned id always has a backing document.
func (s *Store) DefaultBoardID() (schema.BoardID, error) {
	ix, err := s.loadIndex()
	if err != nil {
		return "", err
	}

	if !ix.ActiveBoardID.IsZero() && s.docs.Exists(ix.ActiveBoardID) {
		return ix.ActiveBoardID, nil
	}
	for _, meta := range ix.Boards {
		if s.docs.Exists(meta.ID) {
			return meta.ID, nil
		}
	}

	doc, err := s.CreateBoard("")
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// CreateBoard allocates a new board pre-populated from the global settings,
// persists it, and registers it as the active board.
func (s *Store) CreateBoard(title string) (*schema.BoardDocument, error) {
	settings, err := s.settings.Load()
	if err != nil {
		return nil, err
	}

	doc := NewBoard(schema.NewBoardID(), title, settings)
	if err := s.docs.Save(doc.ID, doc); err != nil {
		return nil, err
	}

	ix, err := s.loadIndex()
	if err != nil {
		return nil, err
	}
	ix.Register(doc.Meta())
	ix.ActiveBoardID = doc.ID
	if err := s.index.Save(ix); err != nil {
		return nil, err
	}

	s.logActivity(settings, fmt.Sprintf("created board %q (%s)", doc.Title, doc.ID))
	return doc, nil
}

// NewBoard builds an in-memory board document seeded from settings: global
// memories are copied in, and a non-empty settings scratchpad becomes the
// first note. Settings are an explicit dependency here, not a process-wide
// global, so tests and importers can seed differently.
func NewBoard(id schema.BoardID, title string, settings *schema.GlobalSettings) *schema.BoardDocument {
	doc := schema.DefaultBoardDocument()
	doc.ID = id
	if title != "" {
		doc.Title = title
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if settings != nil {
		doc.Memories = append(doc.Memories, settings.Memories...)
		if settings.Notes != "" {
			doc.Notes.Areas = append(doc.Notes.Areas, seedArea(settings.Notes, now))
		}
	}
	return doc
}

// seedArea wraps the settings scratchpad text in a minimal notes hierarchy.
func seedArea(text string, now time.Time) schema.Area {
	return schema.Area{
		ID:   uuid.NewString(),
		Name: "General",
		Stacks: []schema.Stack{{
			ID:   uuid.NewString(),
			Name: "Inbox",
			Notebooks: []schema.Notebook{{
				ID:   uuid.NewString(),
				Name: "Notes",
				Sections: []schema.Section{{
					ID:   uuid.NewString(),
					Name: "General",
					Notes: []schema.Note{{
						ID:        uuid.NewString(),
						Title:     "Notes",
						Body:      text,
						CreatedAt: now,
						UpdatedAt: now,
					}},
				}},
			}},
		}},
	}
}

// LoadOrCreate loads the board for id if its document exists, marking it
// active; otherwise it materializes a new board under the given id (ids can
// be supplied externally, e.g. by a reopened window) and registers it.
func (s *Store) LoadOrCreate(id schema.BoardID) (*schema.BoardDocument, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("board id is required")
	}

	ix, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	if s.docs.Exists(id) {
		doc, err := s.docs.Load(id)
		if err != nil {
			return nil, err
		}
		// Repair a stale index: a crash after the document write can leave
		// the entry missing.
		ix.Register(doc.Meta())
		ix.ActiveBoardID = id
		if err := s.index.Save(ix); err != nil {
			return nil, err
		}
		return doc, nil
	}

	settings, err := s.settings.Load()
	if err != nil {
		return nil, err
	}
	doc := NewBoard(id, "", settings)
	if err := s.docs.Save(doc.ID, doc); err != nil {
		return nil, err
	}
	ix.Register(doc.Meta())
	ix.ActiveBoardID = doc.ID
	if err := s.index.Save(ix); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads one board without touching the active pointer.
func (s *Store) Load(id schema.BoardID) (*schema.BoardDocument, error) {
	return s.docs.Load(id)
}

// Save writes the document and refreshes its index metadata as one logical
// step. The document's UpdatedAt is stamped here. Saving a board whose index
// entry is missing re-registers it, which is what repairs a stale index
// after a crash.
func (s *Store) Save(doc *schema.BoardDocument) error {
	doc.Touch()
	if err := s.docs.Save(doc.ID, doc); err != nil {
		return err
	}

	ix, err := s.loadIndex()
	if err != nil {
		return err
	}
	ix.Register(doc.Meta())
	return s.index.Save(ix)
}

// DeleteBoard removes the board's index entry. If it was active, a
// replacement is selected deterministically: the first remaining board, or a
// freshly created one when none remain. The document file and its assets are
// retained on disk.
func (s *Store) DeleteBoard(id schema.BoardID) error {
	ix, err := s.loadIndex()
	if err != nil {
		return err
	}

	wasActive := ix.ActiveBoardID == id
	if !ix.Unregister(id) {
		return fmt.Errorf("board %s: %w", id, store.ErrNotFound)
	}
	if wasActive && len(ix.Boards) > 0 {
		ix.ActiveBoardID = ix.Boards[0].ID
	}
	if err := s.index.Save(ix); err != nil {
		return err
	}

	if wasActive && len(ix.Boards) == 0 {
		if _, err := s.CreateBoard(""); err != nil {
			return err
		}
	}
	return nil
}

// List returns the registered boards in index order.
func (s *Store) List() ([]schema.BoardMeta, error) {
	ix, err := s.loadIndex()
	if err != nil {
		return nil, err
	}
	return ix.Boards, nil
}

// Active returns the active board id, or the zero id when none is set.
func (s *Store) Active() (schema.BoardID, error) {
	ix, err := s.loadIndex()
	if err != nil {
		return "", err
	}
	return ix.ActiveBoardID, nil
}

// SetActive marks a registered board as active.
func (s *Store) SetActive(id schema.BoardID) error {
	ix, err := s.loadIndex()
	if err != nil {
		return err
	}
	if !ix.Contains(id) {
		return fmt.Errorf("board %s: %w", id, store.ErrNotFound)
	}
	ix.ActiveBoardID = id
	return s.index.Save(ix)
}

// Settings loads the shared global settings.
func (s *Store) Settings() (*schema.GlobalSettings, error) {
	return s.settings.Load()
}

// SaveSettings persists the shared global settings.
func (s *Store) SaveSettings(settings *schema.GlobalSettings) error {
	return s.settings.Save(settings)
}

// logActivity appends a line to the settings activity log. Failures are
// logged and absorbed; the log is advisory.
func (s *Store) logActivity(settings *schema.GlobalSettings, line string) {
	settings.AppendLog(time.Now().UTC().Format(time.RFC3339) + " " + line)
	if err := s.settings.Save(settings); err != nil {
		log.Printf("failed to update activity log: %v", err)
	}
}
