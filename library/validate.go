package library

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Form holds raw field values keyed by field name.
type Form map[string]string

// FieldErrors maps a field name to the problem with its value.
type FieldErrors map[string]string

// Validator checks a filled-in form. Forms take one as a parameter.
type Validator func(Form) FieldErrors

// ValidateBook checks the add/edit book form.
func ValidateBook(f Form) FieldErrors {
	errs := FieldErrors{}
	for _, name := range []string{"name", "isbn", "category"} {
		if strings.TrimSpace(f[name]) == "" {
			errs[name] = fmt.Sprintf("%s can't be empty", name)
		}
	}
	if _, ok := errs["category"]; !ok && !knownCategory(f["category"]) {
		errs["category"] = "unknown category"
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(f["price"]), 64)
	switch {
	case err != nil || math.IsNaN(price) || math.IsInf(price, 0):
		errs["price"] = "Only numbers are allowed"
	case price < 0:
		errs["price"] = "price can't be negative"
	}

	qty, err := strconv.Atoi(strings.TrimSpace(f["quantity"]))
	switch {
	case err != nil:
		errs["quantity"] = "Only numbers are allowed"
	case qty < 0:
		errs["quantity"] = "quantity can't be negative"
	}
	return errs
}

// BookFromForm converts a form that passed ValidateBook.
func BookFromForm(f Form) Book {
	price, _ := strconv.ParseFloat(strings.TrimSpace(f["price"]), 64)
	qty, _ := strconv.Atoi(strings.TrimSpace(f["quantity"]))
	return Book{
		ISBN:     strings.TrimSpace(f["isbn"]),
		Name:     strings.TrimSpace(f["name"]),
		Category: canonicalCategory(f["category"]),
		Price:    price,
		Quantity: qty,
	}
}

// ValidateUser checks the add user form.
func ValidateUser(f Form) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f["username"]) == "" {
		errs["username"] = "username can't be empty"
	}
	if f["password"] == "" {
		errs["password"] = "password can't be empty"
	}
	if !Role(strings.TrimSpace(f["role"])).Valid() {
		errs["role"] = `role must be "admin" or "user"`
	}
	return errs
}

// ValidateLogin checks the login form.
func ValidateLogin(f Form) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f["username"]) == "" {
		errs["username"] = "username can't be empty"
	}
	if f["password"] == "" {
		errs["password"] = "password can't be empty"
	}
	return errs
}

func knownCategory(c string) bool {
	return canonicalCategory(c) != ""
}

func canonicalCategory(c string) string {
	c = strings.TrimSpace(c)
	for _, known := range Categories {
		if strings.EqualFold(known, c) {
			return known
		}
	}
	return ""
}
