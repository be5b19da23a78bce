package library

// Book is a catalog entry. Quantity counts the copies currently on the shelf.
type Book struct {
	ISBN     string  `json:"isbn"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Role decides which commands a user may run.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a roster entry. BorrowedBooks holds snapshots of books taken at
// borrow time, not live catalog entries.
type User struct {
	Username      string `json:"username"`
	Password      string `json:"-"` // plaintext, only set on input to AddUser
	PasswordHash  string `json:"-"` // Don't serialize password hash
	Role          Role   `json:"role"`
	BorrowedBooks []Book `json:"borrowedBooks"`
}

// clone returns a copy whose borrowed list does not share backing storage.
func (u User) clone() User {
	c := u
	c.BorrowedBooks = append([]Book(nil), u.BorrowedBooks...)
	return c
}

// Categories lists the shelf categories a book may be filed under.
var Categories = []string{
	"Sci-Fi",
	"Action",
	"Adventure",
	"Horror",
	"Romance",
	"Mystery",
	"Thriller",
	"Drama",
	"Fantasy",
	"Comedy",
}
