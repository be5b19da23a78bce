package library

// RequireLogin passes when someone is logged in.
func RequireLogin(s *Session) error {
	if _, ok := s.CurrentUser(); !ok {
		return ErrLoginRequired
	}
	return nil
}

// RequireAdmin passes when the logged-in user is an admin.
func RequireAdmin(s *Session) error {
	if err := RequireLogin(s); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

// RequireBorrower passes when a non-admin user is logged in. Admins run the
// desk; they do not borrow.
func RequireBorrower(s *Session) error {
	if err := RequireLogin(s); err != nil {
		return err
	}
	if s.IsAdmin() {
		return ErrBorrowerRequired
	}
	return nil
}
