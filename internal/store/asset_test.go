package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kverlander/slate/internal/schema"
)

func TestAssetStoreRoundTrip(t *testing.T) {
	s := NewAssetStore(t.TempDir())

	ref, err := s.Store([]byte("image bytes"), ".PNG")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if !strings.HasSuffix(ref.StoredFilename, ".png") {
		t.Errorf("StoredFilename = %q, want lowercased .png extension", ref.StoredFilename)
	}

	path, ok := s.Resolve(ref)
	if !ok {
		t.Fatal("Resolve() = missing, want found")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "image bytes" {
		t.Errorf("content = %q, want %q", data, "image bytes")
	}
}

func TestAssetStoreGeneratedNamesAreUnique(t *testing.T) {
	s := NewAssetStore(t.TempDir())

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		ref, err := s.Store([]byte("x"), "png")
		if err != nil {
			t.Fatalf("Store() error = %v", err)
		}
		if seen[ref.StoredFilename] {
			t.Fatalf("duplicate generated name %s", ref.StoredFilename)
		}
		seen[ref.StoredFilename] = true
	}
}

func TestAssetStoreStoreFile(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "vacation photo.jpg")
	if err := os.WriteFile(src, []byte("jpeg"), 0600); err != nil {
		t.Fatal(err)
	}

	s := NewAssetStore(t.TempDir())
	ref, err := s.StoreFile(src)
	if err != nil {
		t.Fatalf("StoreFile() error = %v", err)
	}
	if ref.OriginalName != "vacation photo.jpg" {
		t.Errorf("OriginalName = %q, want %q", ref.OriginalName, "vacation photo.jpg")
	}
	if !strings.HasSuffix(ref.StoredFilename, ".jpg") {
		t.Errorf("StoredFilename = %q, want .jpg extension", ref.StoredFilename)
	}
	if _, ok := s.Resolve(ref); !ok {
		t.Error("Resolve() = missing for freshly stored file")
	}
	// The source is copied, not moved.
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source file gone after StoreFile: %v", err)
	}
}

func TestAssetStoreResolveMissing(t *testing.T) {
	s := NewAssetStore(t.TempDir())

	ref, err := s.Store([]byte("bytes"), ".png")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	path, ok := s.Resolve(ref)
	if !ok {
		t.Fatal("Resolve() = missing before delete")
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	// A deleted asset resolves as missing, never as an error.
	if _, ok := s.Resolve(ref); ok {
		t.Error("Resolve() = found after delete, want missing")
	}

	tests := []schema.AssetRef{
		{},
		{StoredFilename: "../escape.png"},
		{StoredFilename: ".."},
		{StoredFilename: "."},
		{StoredFilename: "never-stored.png"},
	}
	for _, ref := range tests {
		if _, ok := s.Resolve(ref); ok {
			t.Errorf("Resolve(%+v) = found, want missing", ref)
		}
	}
}

func TestAssetStoreResolveRejectsDirectories(t *testing.T) {
	dir := t.TempDir()
	s := NewAssetStore(dir)

	// Force the assets dir into existence, then plant a subdirectory in it.
	if _, err := s.Store([]byte("x"), ".png"); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(s.Dir(), "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	// Only regular files resolve; a directory is never a valid asset.
	if _, ok := s.Resolve(schema.AssetRef{StoredFilename: "nested"}); ok {
		t.Error(`Resolve("nested") = found for a directory, want missing`)
	}
}

func TestStoreStripsSeparatorsFromExtension(t *testing.T) {
	dir := t.TempDir()
	s := NewAssetStore(dir)

	ref, err := s.Store([]byte("x"), "../../../etc/cron.d")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if strings.ContainsAny(ref.StoredFilename, `/\`) {
		t.Fatalf("StoredFilename = %q contains a separator", ref.StoredFilename)
	}

	// The bytes landed inside the asset directory, nowhere else.
	path, ok := s.Resolve(ref)
	if !ok {
		t.Fatal("Resolve() = missing for freshly stored asset")
	}
	if filepath.Dir(path) != s.Dir() {
		t.Errorf("asset written to %s, want inside %s", path, s.Dir())
	}
}
