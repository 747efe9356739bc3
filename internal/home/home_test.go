package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirLayout(t *testing.T) {
	base := filepath.Join(t.TempDir(), "sievehome")
	d, err := New(base)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if d.Path() != base {
		t.Errorf("Path() = %q, want %q", d.Path(), base)
	}
	if d.InboxPath() != filepath.Join(base, InboxDirName) {
		t.Errorf("InboxPath() = %q", d.InboxPath())
	}
	if d.OutputPath() != filepath.Join(base, OutputDirName) {
		t.Errorf("OutputPath() = %q", d.OutputPath())
	}
	if d.ConfigPath() != filepath.Join(base, ConfigFileName) {
		t.Errorf("ConfigPath() = %q", d.ConfigPath())
	}

	if d.Exists() {
		t.Error("Exists() true before EnsureExists")
	}
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	if !d.Exists() {
		t.Error("Exists() false after EnsureExists")
	}
	for _, dir := range []string{d.InboxPath(), d.OutputPath()} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("expected directory %s, err %v", dir, err)
		}
	}

	if d.ConfigExists() {
		t.Error("ConfigExists() true with no config file")
	}
	if err := os.WriteFile(d.ConfigPath(), []byte("personas: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !d.ConfigExists() {
		t.Error("ConfigExists() false after writing config")
	}
}

func TestNewDefaultsToUserHome(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no user home dir: %v", err)
	}
	if d.Path() != filepath.Join(home, DefaultDirName) {
		t.Errorf("Path() = %q, want under user home", d.Path())
	}
}
