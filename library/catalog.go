package library

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	MsgBookAdded     = "New Book Added Successfully"
	MsgBookUpdated   = "Book Updated Successfully"
	MsgBookDeleted   = "Book Deleted Successfully"
	MsgDuplicateISBN = "Book with this ISBN already exists"
	MsgInvalidBook   = "Invalid book details"
)

// Catalog owns the books on the shelf. It is not safe for concurrent use.
type Catalog struct {
	books    []Book
	notifier Notifier
	logger   *zap.Logger
}

// NewCatalog creates a catalog holding a copy of books. logger may be nil.
// The starting books obey the same rules as Add: a non-empty, unique isbn and
// no negative price or quantity.
func NewCatalog(books []Book, notifier Notifier, logger *zap.Logger) (*Catalog, error) {
	if notifier == nil {
		return nil, ErrNoNotifier
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := checkSeed(books); err != nil {
		return nil, err
	}
	return &Catalog{
		books:    append([]Book(nil), books...),
		notifier: notifier,
		logger:   logger.Named("catalog"),
	}, nil
}

func checkSeed(books []Book) error {
	seen := make(map[string]int, len(books))
	for i, b := range books {
		if !bookIsSound(b) {
			return fmt.Errorf("%w: entry %d (isbn %q): empty isbn or negative price/quantity", ErrInvalidSeed, i+1, b.ISBN)
		}
		if first, dup := seen[b.ISBN]; dup {
			return fmt.Errorf("%w: entry %d repeats isbn %q of entry %d", ErrInvalidSeed, i+1, b.ISBN, first)
		}
		seen[b.ISBN] = i + 1
	}
	return nil
}

// Add appends a book. The isbn must not already be on the shelf.
func (c *Catalog) Add(book Book) {
	if !bookIsSound(book) {
		c.logger.Debug("add refused", zap.String("isbn", book.ISBN))
		c.notifier.ShowMessage(MsgInvalidBook)
		return
	}
	if _, ok := c.index(book.ISBN); ok {
		c.logger.Debug("duplicate isbn", zap.String("isbn", book.ISBN))
		c.notifier.ShowMessage(MsgDuplicateISBN)
		return
	}
	c.books = append(c.books, book)
	c.logger.Debug("book added", zap.String("isbn", book.ISBN), zap.Int("quantity", book.Quantity))
	c.notifier.ShowMessage(MsgBookAdded)
}

// Update replaces the entry with the same isbn. An unknown isbn leaves the
// catalog unchanged; the message is shown either way.
func (c *Catalog) Update(book Book) {
	if !bookIsSound(book) {
		c.notifier.ShowMessage(MsgInvalidBook)
		return
	}
	if i, ok := c.index(book.ISBN); ok {
		c.books[i] = book
		c.logger.Debug("book updated", zap.String("isbn", book.ISBN))
	} else {
		c.logger.Debug("update of unknown isbn ignored", zap.String("isbn", book.ISBN))
	}
	c.notifier.ShowMessage(MsgBookUpdated)
}

// Delete removes every entry with the given isbn.
func (c *Catalog) Delete(isbn string) {
	kept := c.books[:0]
	for _, b := range c.books {
		if b.ISBN != isbn {
			kept = append(kept, b)
		}
	}
	removed := len(c.books) - len(kept)
	c.books = kept
	c.logger.Debug("book deleted", zap.String("isbn", isbn), zap.Int("removed", removed))
	c.notifier.ShowMessage(MsgBookDeleted)
}

// List returns the books in insertion order.
func (c *Catalog) List() []Book {
	return append([]Book(nil), c.books...)
}

// Find returns the book with the given isbn.
func (c *Catalog) Find(isbn string) (Book, bool) {
	i, ok := c.index(isbn)
	if !ok {
		return Book{}, false
	}
	return c.books[i], true
}

// adjustQuantity shifts a book's shelf count without notifying anyone. It is
// the borrow/return path; it refuses to take a count below zero.
func (c *Catalog) adjustQuantity(isbn string, delta int) bool {
	i, ok := c.index(isbn)
	if !ok {
		return false
	}
	if c.books[i].Quantity+delta < 0 {
		return false
	}
	c.books[i].Quantity += delta
	return true
}

func (c *Catalog) index(isbn string) (int, bool) {
	for i, b := range c.books {
		if b.ISBN == isbn {
			return i, true
		}
	}
	return -1, false
}

func bookIsSound(b Book) bool {
	return strings.TrimSpace(b.ISBN) != "" && b.Price >= 0 && b.Quantity >= 0
}
