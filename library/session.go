package library

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const (
	MsgLoggedIn           = "Logged in successfully"
	MsgInvalidCredentials = "Invalid credentials"
	MsgLoggedOut          = "Logged out successfully"
	MsgBorrowed           = "Book borrowed successfully"
	MsgNotAvailable       = "Book not available for borrowing"
	MsgLoginToBorrow      = "Please log in to borrow books"
	MsgReturned           = "Book returned successfully"
	MsgNotBorrowed        = "Book not found in borrowed list"
	MsgUserExists         = "Username already exists"
	MsgUserAdded          = "User added successfully"
	MsgInvalidUser        = "Invalid user details"
	MsgUserDeleted        = "User deleted successfully"
	MsgSaveFailed         = "Could not save session"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SessionOptions tunes a Session. The zero value is usable.
type SessionOptions struct {
	Logger     *zap.Logger
	BcryptCost int
}

// Session owns the roster, the single login slot and the logged-in user's
// borrowed list. Borrow and return adjust the catalog through its silent
// quantity path. It is not safe for concurrent use.
type Session struct {
	catalog  *Catalog
	storage  Storage
	notifier Notifier
	logger   *zap.Logger
	cost     int

	users    []User
	current  string // username of the logged-in user, "" when logged out
	borrowed []Book
}

// NewSession builds the roster from users, hashing their passwords, and
// restores a previously persisted login from storage.
func NewSession(catalog *Catalog, storage Storage, notifier Notifier, users []User, opts SessionOptions) (*Session, error) {
	if catalog == nil {
		return nil, ErrNoCatalog
	}
	if storage == nil {
		return nil, ErrNoStorage
	}
	if notifier == nil {
		return nil, ErrNoNotifier
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		catalog:  catalog,
		storage:  storage,
		notifier: notifier,
		logger:   logger.Named("session"),
		cost:     opts.BcryptCost,
	}
	for _, u := range users {
		entry, err := s.rosterEntry(u)
		if err != nil {
			return nil, err
		}
		s.users = append(s.users, entry)
	}
	s.restore()
	return s, nil
}

// restore re-enters the persisted login, if any. Records that cannot be
// decoded or name an unknown user are discarded.
func (s *Session) restore() {
	raw, ok, err := s.storage.Get(SessionKey)
	if err != nil {
		s.logger.Error("read persisted session", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var record User
	if err := json.UnmarshalFromString(raw, &record); err != nil {
		s.logger.Warn("discarding unreadable session record", zap.Error(err))
		s.discardPersisted()
		return
	}
	i, found := s.find(record.Username)
	if !found {
		s.logger.Warn("discarding session of unknown user", zap.String("username", record.Username))
		s.discardPersisted()
		return
	}

	// Copies held by the restored user are off the shelf again. A loan with
	// no copy left to take is dropped so a later return cannot mint one.
	held := make([]Book, 0, len(record.BorrowedBooks))
	for _, b := range record.BorrowedBooks {
		if !s.catalog.adjustQuantity(b.ISBN, -1) {
			s.logger.Warn("dropping restored loan with no shelf copy", zap.String("isbn", b.ISBN))
			continue
		}
		held = append(held, b)
	}
	s.users[i].BorrowedBooks = held
	s.current = record.Username
	s.borrowed = append([]Book(nil), held...)
	if len(held) != len(record.BorrowedBooks) {
		if err := s.persist(s.users[i]); err != nil {
			s.logger.Warn("corrected session record not saved", zap.Error(err))
		}
	}
	s.logger.Info("session restored", zap.String("username", s.current), zap.Int("borrowed", len(s.borrowed)))
}

func (s *Session) discardPersisted() {
	if err := s.storage.Remove(SessionKey); err != nil {
		s.logger.Error("remove persisted session", zap.Error(err))
	}
}

// ------------------ Session ------------------

// Login starts a session when username and password both match a roster entry.
func (s *Session) Login(username, password string) {
	i, found := s.find(username)
	if !found || !VerifyPassword(password, s.users[i].PasswordHash) {
		s.logger.Debug("login refused", zap.String("username", username))
		s.notifier.ShowMessage(MsgInvalidCredentials)
		return
	}
	if err := s.persist(s.users[i]); err != nil {
		s.notifier.ShowMessage(MsgSaveFailed)
		return
	}
	s.current = username
	s.borrowed = append([]Book(nil), s.users[i].BorrowedBooks...)
	s.logger.Info("logged in", zap.String("username", username), zap.String("role", string(s.users[i].Role)))
	s.notifier.ShowMessage(MsgLoggedIn)
}

// Logout ends the session and clears the persisted record. It is safe to
// call when nobody is logged in.
func (s *Session) Logout() {
	if s.current != "" {
		s.logger.Info("logged out", zap.String("username", s.current))
	}
	s.current = ""
	s.borrowed = nil
	s.discardPersisted()
	s.notifier.ShowMessage(MsgLoggedOut)
}

// CurrentUser returns the logged-in user.
func (s *Session) CurrentUser() (User, bool) {
	i, ok := s.currentIndex()
	if !ok {
		return User{}, false
	}
	return s.users[i].public(), true
}

// IsAdmin reports whether the logged-in user has the admin role.
func (s *Session) IsAdmin() bool {
	i, ok := s.currentIndex()
	return ok && s.users[i].Role == RoleAdmin
}

// BorrowedBooks returns the logged-in user's borrowed list.
func (s *Session) BorrowedBooks() []Book {
	return append([]Book(nil), s.borrowed...)
}

// ------------------ Circulation ------------------

// Borrow takes one copy of a book off the shelf for the logged-in user.
func (s *Session) Borrow(isbn string) {
	i, ok := s.currentIndex()
	if !ok {
		s.notifier.ShowMessage(MsgLoginToBorrow)
		return
	}
	book, found := s.catalog.Find(isbn)
	if !found || book.Quantity <= 0 {
		s.logger.Debug("borrow refused", zap.String("isbn", isbn))
		s.notifier.ShowMessage(MsgNotAvailable)
		return
	}

	updated := s.users[i].clone()
	updated.BorrowedBooks = append(append([]Book(nil), s.borrowed...), book)
	if err := s.persist(updated); err != nil {
		s.notifier.ShowMessage(MsgSaveFailed)
		return
	}
	s.catalog.adjustQuantity(isbn, -1)
	s.users[i] = updated
	s.borrowed = append([]Book(nil), updated.BorrowedBooks...)
	s.logger.Debug("book borrowed", zap.String("isbn", isbn), zap.String("username", s.current))
	s.notifier.ShowMessage(MsgBorrowed)
}

// Return hands back the first borrowed copy with the given isbn.
func (s *Session) Return(isbn string) {
	pos := -1
	for j, b := range s.borrowed {
		if b.ISBN == isbn {
			pos = j
			break
		}
	}
	i, ok := s.currentIndex()
	if pos == -1 || !ok {
		s.notifier.ShowMessage(MsgNotBorrowed)
		return
	}

	remaining := make([]Book, 0, len(s.borrowed)-1)
	remaining = append(remaining, s.borrowed[:pos]...)
	remaining = append(remaining, s.borrowed[pos+1:]...)
	updated := s.users[i].clone()
	updated.BorrowedBooks = remaining
	if err := s.persist(updated); err != nil {
		s.notifier.ShowMessage(MsgSaveFailed)
		return
	}
	if !s.catalog.adjustQuantity(isbn, 1) {
		s.logger.Warn("returned book is no longer in the catalog", zap.String("isbn", isbn))
	}
	s.users[i] = updated
	s.borrowed = remaining
	s.logger.Debug("book returned", zap.String("isbn", isbn), zap.String("username", s.current))
	s.notifier.ShowMessage(MsgReturned)
}

// ------------------ Roster ------------------

// Users returns the roster without credentials.
func (s *Session) Users() []User {
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.public())
	}
	return out
}

// AddUser registers a new user. An empty role means RoleUser. New users
// start with nothing borrowed.
func (s *Session) AddUser(user User) {
	if _, found := s.find(user.Username); found {
		s.notifier.ShowMessage(MsgUserExists)
		return
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	user.BorrowedBooks = nil
	if strings.TrimSpace(user.Username) == "" || user.Password == "" || !user.Role.Valid() {
		s.notifier.ShowMessage(MsgInvalidUser)
		return
	}
	entry, err := s.rosterEntry(user)
	if err != nil {
		s.logger.Warn("hash password", zap.String("username", user.Username), zap.Error(err))
		s.notifier.ShowMessage(MsgInvalidUser)
		return
	}
	s.users = append(s.users, entry)
	s.logger.Info("user added", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	s.notifier.ShowMessage(MsgUserAdded)
}

// DeleteUser removes every roster entry with the given username. Copies the
// user still held go back on the shelf, and deleting the logged-in user ends
// the session.
func (s *Session) DeleteUser(username string) {
	kept := s.users[:0]
	for _, u := range s.users {
		if u.Username != username {
			kept = append(kept, u)
			continue
		}
		for _, b := range u.BorrowedBooks {
			s.catalog.adjustQuantity(b.ISBN, 1)
		}
	}
	s.users = kept

	if username != "" && username == s.current {
		s.current = ""
		s.borrowed = nil
		s.discardPersisted()
	}
	s.logger.Info("user deleted", zap.String("username", username))
	s.notifier.ShowMessage(MsgUserDeleted)
}

// ------------------ Helpers ------------------

func (s *Session) rosterEntry(u User) (User, error) {
	hash, err := HashPassword(u.Password, s.cost)
	if err != nil {
		return User{}, err
	}
	entry := u.clone()
	entry.Password = ""
	entry.PasswordHash = hash
	return entry, nil
}

func (s *Session) find(username string) (int, bool) {
	for i, u := range s.users {
		if u.Username == username {
			return i, true
		}
	}
	return -1, false
}

func (s *Session) currentIndex() (int, bool) {
	if s.current == "" {
		return -1, false
	}
	return s.find(s.current)
}

func (s *Session) persist(u User) error {
	raw, err := json.MarshalToString(u.public())
	if err != nil {
		s.logger.Error("encode session record", zap.Error(err))
		return err
	}
	if err := s.storage.Set(SessionKey, raw); err != nil {
		s.logger.Error("persist session", zap.String("username", u.Username), zap.Error(err))
		return err
	}
	return nil
}

func (u User) public() User {
	c := u.clone()
	c.Password = ""
	c.PasswordHash = ""
	return c
}
