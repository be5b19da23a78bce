package library

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

func newManager(t *testing.T, dbPath string, n Notifier) *LibraryManager {
	t.Helper()
	mgr, err := NewLibraryManager(Options{DBPath: dbPath, Notifier: n, BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("mgr: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func TestLoginSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.db")
	rec := &recorder{}

	first, err := NewLibraryManager(Options{DBPath: path, Notifier: rec, BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	first.Login("user", "user")
	first.BorrowBook("987654321")
	first.Close()

	// A fresh process starts from the seed catalog and restores the login.
	second := newManager(t, path, rec)
	u, ok := second.CurrentUser()
	if !ok || u.Username != "user" {
		t.Fatalf("expected restored login, got %+v ok=%v", u, ok)
	}
	if got := len(second.BorrowedBooks()); got != 1 {
		t.Fatalf("want 1 borrowed book, got %d", got)
	}
	b, _ := second.GetBook("987654321")
	if b.Quantity != 7 {
		t.Fatalf("restored loan should hold a copy: quantity %d", b.Quantity)
	}

	second.Logout()
	third := newManager(t, path, rec)
	if _, ok := third.CurrentUser(); ok {
		t.Fatalf("logout should clear the saved login")
	}
}

func TestManagerCatalogFile(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "catalog.json")
	data := `[{"isbn":"111","name":"Dune","category":"Sci-Fi","price":12.5,"quantity":2}]`
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	books, err := LoadCatalogFile(tmp)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	mgr, err := NewLibraryManager(Options{InMemory: true, Books: books, Notifier: &recorder{}, BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("mgr: %v", err)
	}
	all := mgr.GetAllBooks()
	if len(all) != 1 || all[0].Name != "Dune" || all[0].Price != 12.5 {
		t.Fatalf("unexpected catalog %+v", all)
	}
}

func TestManagerRequiresNotifier(t *testing.T) {
	if _, err := NewLibraryManager(Options{InMemory: true}); err == nil {
		t.Fatalf("expected error without a notifier")
	}
}

func TestManagerRefusesBadCatalogFile(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "catalog.json")
	data := `[{"isbn":"1","quantity":1},{"isbn":"1","quantity":5},{"isbn":"2","price":-4,"quantity":-3}]`
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	books, err := LoadCatalogFile(tmp)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	mgr, err := NewLibraryManager(Options{InMemory: true, Books: books, Notifier: &recorder{}, BcryptCost: bcrypt.MinCost})
	if !errors.Is(err, ErrInvalidSeed) {
		t.Fatalf("want ErrInvalidSeed, got %v", err)
	}
	if mgr != nil {
		t.Fatalf("no manager should be built from a bad catalog")
	}
}

func TestPrettyBookTruncatesByRune(t *testing.T) {
	name := strings.Repeat("é", 40)
	line := PrettyBook(Book{ISBN: "1", Name: name, Category: "Drama", Price: 1, Quantity: 1})
	if !utf8.ValidString(line) {
		t.Fatalf("truncation split a character: %q", line)
	}
	if want := strings.Repeat("é", 27) + "..."; !strings.Contains(line, want) {
		t.Fatalf("want %q in %q", want, line)
	}
	if got := truncate("Dune", 30); got != "Dune" {
		t.Fatalf("short names stay whole, got %q", got)
	}
}
