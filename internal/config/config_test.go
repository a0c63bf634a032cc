package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte(body), 0600); err != nil {
		t.Fatalf("write settings: %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Settings != DefaultSettings() {
		t.Errorf("expected defaults, got %+v", cfg.Settings)
	}
	if cfg.DatabasePath() != filepath.Join(dir, "todo.db") {
		t.Errorf("unexpected database path %q", cfg.DatabasePath())
	}
}

func TestNew_ReadsSettings(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "storage_key: groceries\ndatabase: /var/lib/todo/tasks.db\n")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StorageKey != "groceries" {
		t.Errorf("expected storage key groceries, got %q", cfg.StorageKey)
	}
	if cfg.DatabasePath() != "/var/lib/todo/tasks.db" {
		t.Errorf("expected absolute database path kept, got %q", cfg.DatabasePath())
	}
	if cfg.ExportList != DefaultExportList {
		t.Errorf("expected default export list, got %q", cfg.ExportList)
	}
}

func TestNew_BlankKeysFallBack(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "storage_key: \"\"\nexport_list: \"\"\n")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Settings != DefaultSettings() {
		t.Errorf("expected defaults, got %+v", cfg.Settings)
	}
}

func TestNew_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "storage_key: [unclosed\n")

	if _, err := New(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("unexpected dir %q", got)
	}
}

func TestTokenHelpers(t *testing.T) {
	cfg, _ := New(t.TempDir())
	if cfg.HasToken() {
		t.Fatal("expected no token")
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if !cfg.HasToken() {
		t.Error("expected token")
	}
	if err := cfg.RemoveToken(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if cfg.HasToken() {
		t.Error("expected token removed")
	}
}

func TestLogger_NilDiscards(t *testing.T) {
	cfg := &Config{}
	cfg.Logger().Info("dropped")
}
