package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataDir != "" || cfg.LogFile != "" || cfg.NoColor {
		t.Errorf("defaults = %+v, want zero values", cfg)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SLATE_DATA_DIR", "/srv/slate-data")
	t.Setenv("SLATE_NO_COLOR", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataDir != "/srv/slate-data" {
		t.Errorf("DataDir = %q, want env value", cfg.DataDir)
	}
	if !cfg.NoColor {
		t.Error("NoColor = false, want env value true")
	}
}

func TestLocalFileOverridesEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SLATE_DATA_DIR", "/from-env")

	local := `data_dir = "/from-file"
no_color = true
`
	if err := os.WriteFile(LocalFileName, []byte(local), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataDir != "/from-file" {
		t.Errorf("DataDir = %q, want local file to win over env", cfg.DataDir)
	}
	if !cfg.NoColor {
		t.Error("NoColor = false, want local file value")
	}
}

func TestLoadRejectsMalformedLocalFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile(LocalFileName, []byte("data_dir = [broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("Load() with malformed local file succeeded, want error")
	}
}
