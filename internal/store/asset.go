package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kverlander/slate/internal/schema"
)

// AssetStore holds opaque binary files (images, attachments) referenced by
// board documents. Every stored asset gets a generated, collision-improbable
// filename; the filename is the whole reference. Nothing tracks which
// documents reference which assets, so deleting a board never deletes
// assets.
type AssetStore struct {
	dir string
}

// NewAssetStore returns an asset store rooted at dataDir.
func NewAssetStore(dataDir string) *AssetStore {
	return &AssetStore{dir: filepath.Join(dataDir, AssetsDirName)}
}

// Dir returns the asset directory path.
func (s *AssetStore) Dir() string {
	return s.dir
}

// Store writes data under a freshly generated filename with the given
// extension and returns a reference to it.
func (s *AssetStore) Store(data []byte, ext string) (schema.AssetRef, error) {
	name := uuid.NewString() + normalizeExt(ext)
	path := filepath.Join(s.dir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return schema.AssetRef{}, fmt.Errorf("failed to store asset: %w", err)
	}
	return schema.AssetRef{StoredFilename: name}, nil
}

// StoreFile copies the file at src into the store, keeping its extension and
// recording its original name in the reference.
func (s *AssetStore) StoreFile(src string) (schema.AssetRef, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return schema.AssetRef{}, fmt.Errorf("failed to read asset source %s: %w", src, err)
	}

	ref, err := s.Store(data, filepath.Ext(src))
	if err != nil {
		return schema.AssetRef{}, err
	}
	ref.OriginalName = filepath.Base(src)
	return ref, nil
}

// Resolve returns the on-disk path for ref. ok is false when the referenced
// file is absent; a missing asset is not an error, callers render a
// placeholder instead.
func (s *AssetStore) Resolve(ref schema.AssetRef) (string, bool) {
	if ref.IsZero() {
		return "", false
	}
	// Generated names are plain filenames; reject anything that would
	// escape the asset directory ("..", ".", separators).
	name := ref.StoredFilename
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", false
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// normalizeExt ensures a leading dot and lowercases the extension. Path
// separators are stripped so the extension can never push the generated name
// out of the asset directory. An empty extension stays empty.
func normalizeExt(ext string) string {
	ext = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return -1
		}
		return r
	}, ext)
	if ext == "" || ext == "." {
		return ""
	}
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
