package library

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Options configures a LibraryManager.
type Options struct {
	// DBPath is the SQLite file holding the session slot. Ignored when
	// InMemory is set.
	DBPath   string
	InMemory bool

	Books []Book // nil means DefaultBooks
	Users []User // nil means DefaultUsers

	Notifier   Notifier
	Logger     *zap.Logger
	BcryptCost int
}

// LibraryManager is a thin façade wiring storage, catalog and session, keeping
// CLI code simple.
type LibraryManager struct {
	storage Storage
	catalog *Catalog
	session *Session
	logger  *zap.Logger
}

// NewLibraryManager opens storage and builds both stores, restoring any
// persisted login.
func NewLibraryManager(opts Options) (*LibraryManager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var storage Storage
	if opts.InMemory {
		storage = NewMemoryStorage()
	} else {
		db, err := NewDatabase(opts.DBPath)
		if err != nil {
			return nil, err
		}
		storage = db
	}

	books := opts.Books
	if books == nil {
		books = DefaultBooks()
	}
	users := opts.Users
	if users == nil {
		users = DefaultUsers()
	}

	lm := &LibraryManager{storage: storage, logger: logger}
	var err error
	if lm.catalog, err = NewCatalog(books, opts.Notifier, logger); err != nil {
		lm.Close()
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	if lm.session, err = NewSession(lm.catalog, storage, opts.Notifier, users, SessionOptions{
		Logger:     logger,
		BcryptCost: opts.BcryptCost,
	}); err != nil {
		lm.Close()
		return nil, fmt.Errorf("build session: %w", err)
	}
	return lm, nil
}

// Close closes the underlying storage, if it holds resources.
func (lm *LibraryManager) Close() error {
	if c, ok := lm.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (lm *LibraryManager) Catalog() *Catalog { return lm.catalog }
func (lm *LibraryManager) Session() *Session { return lm.session }

// ------------------ Book helpers ------------------

func (lm *LibraryManager) AddBook(b Book)                   { lm.catalog.Add(b) }
func (lm *LibraryManager) UpdateBook(b Book)                { lm.catalog.Update(b) }
func (lm *LibraryManager) DeleteBook(isbn string)           { lm.catalog.Delete(isbn) }
func (lm *LibraryManager) GetBook(isbn string) (Book, bool) { return lm.catalog.Find(isbn) }
func (lm *LibraryManager) GetAllBooks() []Book              { return lm.catalog.List() }

// ------------------ Session helpers ------------------

func (lm *LibraryManager) Login(username, password string) { lm.session.Login(username, password) }
func (lm *LibraryManager) Logout()                         { lm.session.Logout() }
func (lm *LibraryManager) CurrentUser() (User, bool)       { return lm.session.CurrentUser() }
func (lm *LibraryManager) IsAdmin() bool                   { return lm.session.IsAdmin() }

// ------------------ Member helpers ------------------

func (lm *LibraryManager) AddUser(u User)             { lm.session.AddUser(u) }
func (lm *LibraryManager) DeleteUser(username string) { lm.session.DeleteUser(username) }
func (lm *LibraryManager) GetAllUsers() []User        { return lm.session.Users() }

// ------------------ Circulation ------------------

func (lm *LibraryManager) BorrowBook(isbn string) { lm.session.Borrow(isbn) }
func (lm *LibraryManager) ReturnBook(isbn string) { lm.session.Return(isbn) }
func (lm *LibraryManager) BorrowedBooks() []Book  { return lm.session.BorrowedBooks() }

// ------------------ Reset ------------------

// ResetStorage clears the persisted login in the SQLite file at dbPath. It is
// the manual way out when a stored record keeps the desk from starting.
func ResetStorage(dbPath string) error {
	db, err := NewDatabase(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Remove(SessionKey)
}

// ------------------ Utilities ------------------

// PrettyBook formats a book for lists.
func PrettyBook(b Book) string {
	return fmt.Sprintf("%-12s %-30s %-10s %8.2f %5d", b.ISBN, truncate(b.Name, 30), b.Category, b.Price, b.Quantity)
}

func truncate(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	return string(r[:maxLength-3]) + "..."
}
