package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parley-chat/parley/internal/core/export"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ListLimit != 50 {
		t.Errorf("ListLimit = %d, want 50", cfg.ListLimit)
	}
	if cfg.ExportTemplate != export.DefaultTemplate {
		t.Error("Expected default export template")
	}
	want := filepath.Join(".config", "parley", "parley.db")
	if !filepath.IsAbs(cfg.DatabasePath) || !strings.HasSuffix(cfg.DatabasePath, want) {
		t.Errorf("DatabasePath = %q, want suffix %q", cfg.DatabasePath, want)
	}
}

func TestLoad_DatabasePathFromToml(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "parley")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	toml := "database_path = \"/var/data/custom.db\"\nlist_limit = 7\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DatabasePath != "/var/data/custom.db" {
		t.Errorf("DatabasePath = %q, want /var/data/custom.db", cfg.DatabasePath)
	}
	if cfg.ListLimit != 7 {
		t.Errorf("ListLimit = %d, want 7", cfg.ListLimit)
	}
}

func TestLoad_TemplateOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "parley")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	custom := "# {{title}}\n{{#messages}}{{content}}\n{{/messages}}"
	if err := os.WriteFile(filepath.Join(configDir, "export_template.txt"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ExportTemplate != custom {
		t.Errorf("ExportTemplate = %q, want custom template", cfg.ExportTemplate)
	}
}
