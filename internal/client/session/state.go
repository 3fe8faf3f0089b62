package session

import (
	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/dmitrijs2005/phishshield/internal/client/validate"
)

type Status int

const (
	Unauthenticated Status = iota
	Restoring
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Restoring:
		return "restoring"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is a snapshot of the store. User is a copy; changing it does not
// affect the store.
type State struct {
	Status  Status
	User    *models.User
	Loading bool
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Outcome is the result of a store operation. Fields is set when the input
// failed validation and no request was sent.
type Outcome struct {
	OK      bool
	Message string
	Fields  validate.Errors
}

// User-facing messages.
const (
	MsgWelcomeBack    = "Welcome back!"
	MsgAccountCreated = "Account created successfully!"
	MsgLoggedOut      = "Logged out successfully"
	MsgProfileUpdated = "Profile updated successfully"
	MsgProfileLoaded  = "Profile refreshed"
	MsgLoginFailed    = "Login failed"
	MsgSignupFailed   = "Signup failed"
	MsgUpdateFailed   = "Update failed"
	MsgNotSignedIn    = "You are not signed in"
	MsgNothingToSave  = "Nothing to update"
	MsgSessionChanged = "Session changed while the request was in flight"
)
