package library

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestValidateBook(t *testing.T) {
	valid := Form{"name": "Dune", "isbn": "111", "category": "sci-fi", "price": "9.99", "quantity": "3"}

	tests := []struct {
		name   string
		change Form
		field  string
	}{
		{name: "valid", change: Form{}},
		{name: "empty name", change: Form{"name": "  "}, field: "name"},
		{name: "empty isbn", change: Form{"isbn": ""}, field: "isbn"},
		{name: "unknown category", change: Form{"category": "Poetry"}, field: "category"},
		{name: "price not a number", change: Form{"price": "cheap"}, field: "price"},
		{name: "negative price", change: Form{"price": "-1"}, field: "price"},
		{name: "fractional quantity", change: Form{"quantity": "1.5"}, field: "quantity"},
		{name: "negative quantity", change: Form{"quantity": "-2"}, field: "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Form{}
			for k, v := range valid {
				f[k] = v
			}
			for k, v := range tt.change {
				f[k] = v
			}
			errs := ValidateBook(f)
			if tt.field == "" {
				if len(errs) != 0 {
					t.Fatalf("want no errors, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.field]; !ok || len(errs) != 1 {
				t.Fatalf("want a single error on %s, got %v", tt.field, errs)
			}
		})
	}
}

func TestBookFromForm(t *testing.T) {
	b := BookFromForm(Form{"name": " Dune ", "isbn": "111", "category": "sci-fi", "price": "9.5", "quantity": "3"})
	want := Book{ISBN: "111", Name: "Dune", Category: "Sci-Fi", Price: 9.5, Quantity: 3}
	if b != want {
		t.Fatalf("want %+v, got %+v", want, b)
	}
	if back := BookFromForm(BookForm(b)); back != b {
		t.Fatalf("form round trip changed the book: %+v", back)
	}
}

func TestValidateUserAndLogin(t *testing.T) {
	if errs := ValidateUser(Form{"username": "ann", "password": "pw", "role": "admin"}); len(errs) != 0 {
		t.Fatalf("want valid, got %v", errs)
	}
	errs := ValidateUser(Form{"username": "", "password": "", "role": "owner"})
	for _, field := range []string{"username", "password", "role"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("want error on %s, got %v", field, errs)
		}
	}
	if errs := ValidateLogin(Form{"username": "ann"}); len(errs) != 1 {
		t.Fatalf("want password error, got %v", errs)
	}
}

func TestGates(t *testing.T) {
	s, _, _ := newSession(t, NewMemoryStorage())

	if err := RequireLogin(s); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("want ErrLoginRequired, got %v", err)
	}
	if err := RequireAdmin(s); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("want ErrLoginRequired, got %v", err)
	}
	if err := RequireBorrower(s); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("want ErrLoginRequired, got %v", err)
	}

	s.Login("user", "user")
	if err := RequireLogin(s); err != nil {
		t.Fatalf("logged in user should pass: %v", err)
	}
	if err := RequireAdmin(s); !errors.Is(err, ErrAdminRequired) {
		t.Fatalf("want ErrAdminRequired, got %v", err)
	}
	if err := RequireBorrower(s); err != nil {
		t.Fatalf("user should be able to borrow: %v", err)
	}

	s.Login("admin", "admin")
	if err := RequireAdmin(s); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
	if err := RequireBorrower(s); !errors.Is(err, ErrBorrowerRequired) {
		t.Fatalf("want ErrBorrowerRequired, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword("secret", hash) || VerifyPassword("Secret", hash) {
		t.Fatalf("verify should be exact")
	}
	if _, err := HashPassword(strings.Repeat("x", 100), bcrypt.MinCost); err == nil {
		t.Fatalf("overlong password should be refused")
	}
}

func TestReadCatalog(t *testing.T) {
	books, err := ReadCatalog(strings.NewReader(`[{"isbn":"1","name":"A","category":"Drama","price":1,"quantity":2}]`))
	if err != nil || len(books) != 1 || books[0].Quantity != 2 {
		t.Fatalf("unexpected %+v err=%v", books, err)
	}
	if _, err := ReadCatalog(strings.NewReader(`{`)); err == nil {
		t.Fatalf("want decode error")
	}
}
