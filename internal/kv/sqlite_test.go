package kv

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "kv.db"))
	defer s.Close()

	value, ok, err := s.Get(context.Background(), "todos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("expected missing key, got %q", value)
	}
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "kv.db"))
	defer s.Close()

	if err := s.Set(ctx, "todos", "[1]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "todos", "[2]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "other", "x"); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := s.Get(ctx, "todos")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != "[2]" {
		t.Errorf("expected [2], got %q", value)
	}
}

func TestSQLiteStore_EmptyValue(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "kv.db"))
	defer s.Close()

	if err := s.Set(ctx, "k", ""); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != "" {
		t.Errorf("expected present empty value, got ok=%v value=%q", ok, value)
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "kv.db")

	s := openTestStore(t, path)
	if err := s.Set(ctx, "todos", `[{"id":"1","text":"a","completed":true}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s = openTestStore(t, path)
	defer s.Close()
	value, ok, err := s.Get(ctx, "todos")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != `[{"id":"1","text":"a","completed":true}]` {
		t.Errorf("unexpected value %q", value)
	}
}

func TestSQLiteStore_CancelledContext(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "kv.db"))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Set(ctx, "k", "v"); err == nil {
		t.Error("expected error with cancelled context")
	}
}
