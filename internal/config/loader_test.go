package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("storage:\n  path: /tmp/test.db\nvoice:\n  source: /tmp/voice.fifo\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/test.db" {
		t.Errorf("Storage.Path = %q, want /tmp/test.db", cfg.Storage.Path)
	}
	if cfg.Voice.Source != "/tmp/voice.fifo" {
		t.Errorf("Voice.Source = %q, want /tmp/voice.fifo", cfg.Voice.Source)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("storage: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestDefaultMatchesEmbedded(t *testing.T) {
	// Run from a scratch directory so a developer's local config.yaml
	// cannot leak into the test.
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.Storage.Path != want.Storage.Path {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, want.Storage.Path)
	}
	if cfg.Voice.Source != want.Voice.Source {
		t.Errorf("Voice.Source = %q, want %q", cfg.Voice.Source, want.Voice.Source)
	}
	if cfg.Server.Port != want.Server.Port {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, want.Server.Port)
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/test")
	if got := ExpandPath("~/.parlor/parlor.db"); got != "/home/test/.parlor/parlor.db" {
		t.Errorf("ExpandPath = %q", got)
	}
	if got := ExpandPath("/abs/path.db"); got != "/abs/path.db" {
		t.Errorf("ExpandPath left absolute path alone? got %q", got)
	}
}
