package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultBooks is the catalog a fresh desk starts with.
func DefaultBooks() []Book {
	return []Book{
		{ISBN: "123456789", Name: "Sample Book 1", Category: "Sci-Fi", Price: 15, Quantity: 10},
		{ISBN: "987654321", Name: "Sample Book 2", Category: "Fantasy", Price: 20, Quantity: 8},
	}
}

// DefaultUsers is the roster a fresh desk starts with.
func DefaultUsers() []User {
	return []User{
		{Username: "admin", Password: "admin", Role: RoleAdmin},
		{Username: "user", Password: "user", Role: RoleUser},
	}
}

// ReadCatalog decodes a JSON array of books.
func ReadCatalog(r io.Reader) ([]Book, error) {
	var books []Book
	if err := json.NewDecoder(r).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return books, nil
}

// LoadCatalogFile reads the catalog file at path.
func LoadCatalogFile(path string) ([]Book, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCatalog(f)
}

// BookForm renders a book back into form fields, e.g. to pre-fill an edit.
func BookForm(b Book) Form {
	return Form{
		"name":     b.Name,
		"isbn":     b.ISBN,
		"category": b.Category,
		"price":    fmt.Sprintf("%g", b.Price),
		"quantity": fmt.Sprintf("%d", b.Quantity),
	}
}
