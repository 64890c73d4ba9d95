// Package session holds the cashier's sign-in flag. Credentials are only
// checked for shape; there is no account store behind them.
package session

import (
	"errors"
	"strings"

	"github.com/khushiag23/POS-System/internal/domain"
)

const minPasswordLength = 4

var (
	ErrMissingFields = errors.New("missing email or password")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrShortPassword = errors.New("password too short")
)

type Session struct {
	Authenticated bool   `json:"authenticated"`
	DisplayName   string `json:"display_name,omitempty"`
}

// Login returns an authenticated session for any well-formed email and a
// password of at least four characters.
func Login(email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, ErrMissingFields
	}
	if !strings.Contains(email, "@") {
		return Session{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return Session{}, ErrShortPassword
	}
	return Session{Authenticated: true, DisplayName: email}, nil
}

func Logout(Session) Session {
	return Session{}
}

// RequiresLogin reports whether protected pages must send the user to the
// login screen.
func (s Session) RequiresLogin() bool {
	return !s.Authenticated
}

// ShouldEnterDashboard reports whether the login screen should forward an
// already signed-in user.
func (s Session) ShouldEnterDashboard() bool {
	return s.Authenticated
}

func Notice(err error) *domain.Notice {
	switch {
	case err == nil:
		return domain.SuccessNotice("Welcome back!")
	case errors.Is(err, ErrMissingFields):
		return domain.ErrorNotice("Please fill in all fields")
	case errors.Is(err, ErrInvalidEmail):
		return domain.ErrorNotice("Please enter a valid email")
	case errors.Is(err, ErrShortPassword):
		return domain.ErrorNotice("Password must be at least 4 characters")
	}
	return domain.ErrorNotice("Invalid credentials")
}
