package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDatabasePath_FromConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "parley")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	toml := "database_path = \"/var/data/parley.db\"\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	if got := defaultDatabasePath(); got != "/var/data/parley.db" {
		t.Errorf("defaultDatabasePath() = %q, want /var/data/parley.db", got)
	}
}

func TestDefaultDatabasePath_NoConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	want := filepath.Join(home, ".config", "parley", "parley.db")
	if got := defaultDatabasePath(); got != want {
		t.Errorf("defaultDatabasePath() = %q, want %q", got, want)
	}
}
