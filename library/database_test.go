package library

import (
	"path/filepath"
	"testing"
)

func tempDB(t *testing.T) *Database {
	t.Helper()
	dir := t.TempDir()
	db, err := NewDatabase(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSlotRoundTrip(t *testing.T) {
	db := tempDB(t)

	if _, ok, err := db.Get(SessionKey); err != nil || ok {
		t.Fatalf("empty db: ok=%v err=%v", ok, err)
	}
	if err := db.Set(SessionKey, `{"username":"user"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.Set(SessionKey, `{"username":"admin"}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := db.Get(SessionKey)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `{"username":"admin"}` {
		t.Fatalf("want overwritten value, got %s", v)
	}

	if err := db.Remove(SessionKey); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := db.Get(SessionKey); ok {
		t.Fatalf("slot should be gone")
	}
	// Removing twice is fine.
	if err := db.Remove(SessionKey); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestSlotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lib.db")
	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Set("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	db.Close()

	db, err = NewDatabase(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	v, ok, err := db.Get("k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("want v, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestResetStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.db")
	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.Set(SessionKey, `{"username":"user"}`)
	db.Close()

	if err := ResetStorage(path); err != nil {
		t.Fatalf("reset: %v", err)
	}

	db, _ = NewDatabase(path)
	defer db.Close()
	if _, ok, _ := db.Get(SessionKey); ok {
		t.Fatalf("reset should clear the session slot")
	}
}
