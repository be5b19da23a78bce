package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"library-desk/library"

	"golang.org/x/term"
)

// formField describes one prompt of a form.
type formField struct {
	label  string
	name   string
	secret bool
}

var (
	bookFields = []formField{
		{label: "Name", name: "name"},
		{label: "ISBN", name: "isbn"},
		{label: "Category (" + strings.Join(library.Categories, ", ") + ")", name: "category"},
		{label: "Price", name: "price"},
		{label: "Quantity", name: "quantity"},
	}
	userFields = []formField{
		{label: "Username", name: "username"},
		{label: "Password", name: "password", secret: true},
		{label: "Role (admin/user)", name: "role"},
	}
	loginFields = []formField{
		{label: "Username", name: "username"},
		{label: "Password", name: "password", secret: true},
	}
)

type shell struct {
	mgr *library.LibraryManager
	box *library.MessageBox
	sc  *bufio.Scanner
	out io.Writer

	// readSecret reads a line without echo when stdin is a terminal.
	readSecret func(prompt string) (string, bool)
}

func newShell(mgr *library.LibraryManager, box *library.MessageBox, in io.Reader, out io.Writer) *shell {
	s := &shell{mgr: mgr, box: box, sc: bufio.NewScanner(in), out: out}
	s.readSecret = s.readPassword
	return s
}

// readPassword securely reads a password with masking
func (s *shell) readPassword(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(s.out) // Add newline after password input
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	if !s.sc.Scan() {
		return "", false
	}
	return s.sc.Text(), true
}

func (s *shell) run() {
	fmt.Fprintln(s.out, "Welcome to the Library Desk!")
	s.printHelp()
	if u, ok := s.mgr.CurrentUser(); ok {
		fmt.Fprintf(s.out, "\nWelcome back, %s.\n", u.Username)
	}

	for {
		s.showMessage()
		fmt.Fprint(s.out, "\n> ")
		if !s.sc.Scan() {
			return
		}
		if !s.dispatch(strings.TrimSpace(s.sc.Text())) {
			return
		}
	}
}

// showMessage prints the box's message once, if it is still fresh.
func (s *shell) showMessage() {
	msg, ok := s.box.Current()
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "» %s\n", msg)
	s.box.Dismiss()
}

// dispatch runs one command and reports whether the shell should keep going.
func (s *shell) dispatch(cmd string) bool {
	switch cmd {
	case "login":
		s.handleLogin()
	case "logout":
		s.mgr.Logout()
	case "whoami":
		s.handleWhoAmI()
	case "list books", "dashboard":
		s.handleDashboard()
	case "borrow":
		s.requireBorrower(s.handleBorrow)
	case "return":
		s.requireBorrower(s.handleReturn)
	case "borrowed":
		s.requireLogin(s.handleListBorrowed)
	case "add book":
		s.requireAdmin(s.handleAddBook)
	case "edit book":
		s.requireAdmin(s.handleEditBook)
	case "delete book":
		s.requireAdmin(s.handleDeleteBook)
	case "list users":
		s.requireAdmin(s.handleListUsers)
	case "add user":
		s.requireAdmin(s.handleAddUser)
	case "delete user":
		s.requireAdmin(s.handleDeleteUser)
	case "help":
		s.printHelp()
	case "exit", "quit":
		fmt.Fprintln(s.out, "Goodbye!")
		return false
	case "":
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for the list of commands.")
	}
	return true
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, "Available commands:")
	fmt.Fprintln(s.out, "  Session: login, logout, whoami")
	fmt.Fprintln(s.out, "  Books: list books, borrow, return, borrowed")
	fmt.Fprintln(s.out, "  Admin: add book, edit book, delete book, list users, add user, delete user")
	fmt.Fprintln(s.out, "  System: help, exit")
}

// ------------------ Gates ------------------

func (s *shell) requireLogin(next func()) {
	s.gate(library.RequireLogin(s.mgr.Session()), next)
}

func (s *shell) requireAdmin(next func()) {
	s.gate(library.RequireAdmin(s.mgr.Session()), next)
}

func (s *shell) requireBorrower(next func()) {
	s.gate(library.RequireBorrower(s.mgr.Session()), next)
}

// gate runs next, or sends the user back to the dashboard when err is set.
func (s *shell) gate(err error, next func()) {
	if err != nil {
		fmt.Fprintf(s.out, "%s. Back to the dashboard.\n", capitalize(err.Error()))
		s.handleDashboard()
		return
	}
	next()
}

// ------------------ Forms ------------------

// promptForm asks for each field, keeping initial values on empty input, and
// runs validate over the result.
func (s *shell) promptForm(fields []formField, initial library.Form, validate library.Validator) (library.Form, bool) {
	form := library.Form{}
	for _, f := range fields {
		prompt := f.label
		if v := initial[f.name]; v != "" && !f.secret {
			prompt += " [" + v + "]"
		}
		prompt += ": "

		var (
			value string
			ok    bool
		)
		if f.secret {
			value, ok = s.readSecret(prompt)
		} else {
			value, ok = s.prompt(prompt)
		}
		if !ok {
			return nil, false
		}
		if value == "" {
			value = initial[f.name]
		}
		form[f.name] = value
	}

	errs := validate(form)
	if len(errs) == 0 {
		return form, true
	}
	for _, f := range fields {
		if msg, bad := errs[f.name]; bad {
			fmt.Fprintf(s.out, "  %s: %s\n", f.label, msg)
		}
	}
	return nil, false
}

func (s *shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

// ------------------ Handlers ------------------

func (s *shell) handleLogin() {
	form, ok := s.promptForm(loginFields, nil, library.ValidateLogin)
	if !ok {
		return
	}
	s.mgr.Login(form["username"], form["password"])
}

func (s *shell) handleWhoAmI() {
	u, ok := s.mgr.CurrentUser()
	if !ok {
		fmt.Fprintln(s.out, "Nobody is logged in.")
		return
	}
	fmt.Fprintf(s.out, "%s (%s), %d book(s) borrowed\n", u.Username, u.Role, len(u.BorrowedBooks))
}

func (s *shell) handleDashboard() {
	books := s.mgr.GetAllBooks()
	if len(books) == 0 {
		fmt.Fprintln(s.out, "No books in library.")
	} else {
		printBooks(s.out, books)
	}

	_, loggedIn := s.mgr.CurrentUser()
	switch {
	case s.mgr.IsAdmin():
		fmt.Fprintln(s.out)
		s.handleListUsers()
	case loggedIn:
		fmt.Fprintln(s.out)
		s.handleListBorrowed()
	}
}

func (s *shell) handleBorrow() {
	isbn, ok := s.prompt("ISBN: ")
	if !ok {
		return
	}
	s.mgr.BorrowBook(isbn)
}

func (s *shell) handleReturn() {
	isbn, ok := s.prompt("ISBN: ")
	if !ok {
		return
	}
	s.mgr.ReturnBook(isbn)
}

func (s *shell) handleListBorrowed() {
	borrowed := s.mgr.BorrowedBooks()
	if len(borrowed) == 0 {
		fmt.Fprintln(s.out, "No books issued!")
		return
	}
	fmt.Fprintln(s.out, "Borrowed Books:")
	printBooks(s.out, borrowed)
}

func (s *shell) handleAddBook() {
	form, ok := s.promptForm(bookFields, nil, library.ValidateBook)
	if !ok {
		return
	}
	s.mgr.AddBook(library.BookFromForm(form))
}

func (s *shell) handleEditBook() {
	isbn, ok := s.prompt("ISBN of the book to edit: ")
	if !ok {
		return
	}
	book, found := s.mgr.GetBook(isbn)
	if !found {
		fmt.Fprintf(s.out, "No book with ISBN %s. Back to the dashboard.\n", isbn)
		s.handleDashboard()
		return
	}

	// The isbn identifies the book being edited and is not editable.
	fields := make([]formField, 0, len(bookFields)-1)
	for _, f := range bookFields {
		if f.name != "isbn" {
			fields = append(fields, f)
		}
	}
	initial := library.BookForm(book)
	form, ok := s.promptForm(fields, initial, func(f library.Form) library.FieldErrors {
		errs := library.ValidateBook(f)
		delete(errs, "isbn")
		return errs
	})
	if !ok {
		return
	}
	form["isbn"] = book.ISBN
	s.mgr.UpdateBook(library.BookFromForm(form))
}

func (s *shell) handleDeleteBook() {
	isbn, ok := s.prompt("ISBN: ")
	if !ok {
		return
	}
	s.mgr.DeleteBook(isbn)
}

func (s *shell) handleListUsers() {
	users := s.mgr.GetAllUsers()
	fmt.Fprintln(s.out, "Users List:")
	fmt.Fprintf(s.out, "%-20s %-8s %s\n", "Name", "Role", "Issued Books")
	fmt.Fprintln(s.out, strings.Repeat("-", 70))
	for _, u := range users {
		issued := "No books issued"
		if len(u.BorrowedBooks) > 0 {
			parts := make([]string, 0, len(u.BorrowedBooks))
			for _, b := range u.BorrowedBooks {
				parts = append(parts, fmt.Sprintf("%s (%s)", b.Name, b.ISBN))
			}
			issued = strings.Join(parts, ", ")
		}
		role := "User"
		if u.Role == library.RoleAdmin {
			role = "Admin"
		}
		fmt.Fprintf(s.out, "%-20s %-8s %s\n", u.Username, role, issued)
	}
}

func (s *shell) handleAddUser() {
	form, ok := s.promptForm(userFields, library.Form{"role": string(library.RoleUser)}, library.ValidateUser)
	if !ok {
		return
	}
	s.mgr.AddUser(library.User{
		Username: strings.TrimSpace(form["username"]),
		Password: form["password"],
		Role:     library.Role(strings.TrimSpace(form["role"])),
	})
}

func (s *shell) handleDeleteUser() {
	username, ok := s.prompt("Username: ")
	if !ok {
		return
	}
	s.mgr.DeleteUser(username)
}

func printBooks(out io.Writer, books []library.Book) {
	fmt.Fprintf(out, "%-12s %-30s %-10s %8s %5s\n", "ISBN", "Name", "Category", "Price", "Qty")
	fmt.Fprintln(out, strings.Repeat("-", 70))
	for _, b := range books {
		fmt.Fprintln(out, library.PrettyBook(b))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
