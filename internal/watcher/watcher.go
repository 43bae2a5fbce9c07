// Package watcher provides file system watching for a slate data directory,
// surfacing external modifications to board documents and assets.
package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/kverlander/slate/internal/store"
)

// EventOp represents the type of file system operation.
type EventOp int

const (
	// OpCreate indicates a new file was created.
	OpCreate EventOp = iota
	// OpModify indicates an existing file was modified.
	OpModify
	// OpDelete indicates a file was deleted.
	OpDelete
)

// String returns a human-readable representation of the operation.
func (op EventOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpModify:
		return "modify"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// FileKind represents whether the event is for a board document or an asset.
type FileKind int

const (
	// KindBoard indicates a board document (boards/*.json).
	KindBoard FileKind = iota
	// KindAsset indicates an asset file (assets/*).
	KindAsset
	// KindIndex indicates the boards index (index.json).
	KindIndex
)

// String returns a human-readable representation of the file kind.
func (k FileKind) String() string {
	switch k {
	case KindBoard:
		return "board"
	case KindAsset:
		return "asset"
	case KindIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Event represents a file system event in the data directory.
type Event struct {
	// Path is the path to the file that changed.
	Path string
	// Kind indicates whether a board, asset, or the index changed.
	Kind FileKind
	// Op is the operation that occurred (create, modify, delete).
	Op EventOp
}

// Watcher watches a data directory for external changes. Writes performed
// through the store also show up here; callers that only want foreign
// changes filter by their own recent writes.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan Event
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	dataDir string
}

// New creates a Watcher. It must be started with Start() before it emits
// events.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher: fsw,
		events:  make(chan Event, 100),
		errors:  make(chan error, 10),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching the data directory, its boards/ subdirectory and its
// assets/ subdirectory.
func (w *Watcher) Start(dataDir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.dataDir = dataDir

	boardsDir := filepath.Join(dataDir, store.BoardsDirName)
	assetsDir := filepath.Join(dataDir, store.AssetsDirName)

	if err := w.watcher.Add(dataDir); err != nil {
		return fmt.Errorf("failed to watch data directory %s: %w", dataDir, err)
	}
	if err := w.watcher.Add(boardsDir); err != nil {
		w.watcher.Remove(dataDir)
		return fmt.Errorf("failed to watch boards directory %s: %w", boardsDir, err)
	}
	if err := w.watcher.Add(assetsDir); err != nil {
		// Assets directory may not exist until the first asset is stored.
		if !errors.Is(err, fs.ErrNotExist) {
			w.watcher.Remove(dataDir)
			w.watcher.Remove(boardsDir)
			return fmt.Errorf("failed to watch assets directory %s: %w", assetsDir, err)
		}
	}

	w.running = true
	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop stops watching and cleans up. It blocks until the event loop exits.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	w.wg.Wait()

	close(w.events)
	close(w.errors)
	return nil
}

// Events returns the channel emitting change notifications. Closed on Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel emitting watch errors. Closed on Stop.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// IsRunning reports whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev, ok := w.convertEvent(event); ok {
				select {
				case w.events <- ev:
				case <-w.done:
					return
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.done:
				return
			}
		}
	}
}

// convertEvent converts an fsnotify event into an Event. Returns false for
// events that should be ignored (temp files, chmod, unrelated paths).
func (w *Watcher) convertEvent(event fsnotify.Event) (Event, bool) {
	base := filepath.Base(event.Name)
	// Atomic writes go through dot-prefixed temp files; ignore them.
	if strings.HasPrefix(base, ".") {
		return Event{}, false
	}

	kind, ok := w.classify(event.Name)
	if !ok {
		return Event{}, false
	}

	var op EventOp
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpModify
	case event.Has(fsnotify.Remove):
		op = OpDelete
	case event.Has(fsnotify.Rename):
		// Treat rename as delete (the new name triggers a create).
		op = OpDelete
	default:
		return Event{}, false
	}

	return Event{Path: event.Name, Kind: kind, Op: op}, true
}

// classify maps a changed path onto a board, asset, or index event.
func (w *Watcher) classify(path string) (FileKind, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, false
	}
	dir := filepath.Dir(absPath)

	absData, _ := filepath.Abs(w.dataDir)
	absBoards, _ := filepath.Abs(filepath.Join(w.dataDir, store.BoardsDirName))
	absAssets, _ := filepath.Abs(filepath.Join(w.dataDir, store.AssetsDirName))

	switch dir {
	case absBoards:
		if !strings.HasSuffix(absPath, ".json") {
			return 0, false
		}
		return KindBoard, true
	case absAssets:
		return KindAsset, true
	case absData:
		if filepath.Base(absPath) == store.IndexFileName {
			return KindIndex, true
		}
	}
	return 0, false
}
