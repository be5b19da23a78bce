package library

import "errors"

// Construction errors. These signal wiring mistakes, not business-rule failures.
var (
	ErrNoNotifier = errors.New("library: notifier is required")
	ErrNoCatalog  = errors.New("library: catalog is required")
	ErrNoStorage  = errors.New("library: storage is required")

	// ErrInvalidSeed wraps every refused starting book.
	ErrInvalidSeed = errors.New("library: invalid starting catalog")
)

// Gate errors.
var (
	ErrLoginRequired = errors.New("you must be logged in")
	ErrAdminRequired = errors.New("admin access required")

	ErrBorrowerRequired = errors.New("borrowing is for library members")
)
