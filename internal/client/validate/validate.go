// Package validate checks form input before it is sent to the API. Rules and
// messages match the account forms of the PhishShield web front-end.
package validate

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/phishshield/internal/client/models"
)

// Field names as they appear on the wire.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldPhoneNumber = "phoneNumber"
	FieldAvatar      = "avatar"
)

const (
	MsgEmailInvalid      = "Please enter a valid email address"
	MsgPasswordRequired  = "Password is required"
	MsgNameTooShort      = "Name must be at least 2 characters"
	MsgPasswordTooShort  = "Password must be at least 8 characters"
	MsgPasswordUppercase = "Password must contain at least one uppercase letter"
	MsgPasswordLowercase = "Password must contain at least one lowercase letter"
	MsgPasswordNumber    = "Password must contain at least one number"
	MsgPhoneTooShort     = "Phone number must be at least 10 digits"
	MsgPhoneInvalid      = "Please enter a valid phone number"
	MsgAvatarInvalid     = "Avatar must be an http or https URL"
)

const (
	minNameLen     = 2
	minPasswordLen = 8
	minPhoneLen    = 10
)

var (
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	digitPattern = regexp.MustCompile(`\d`)
)

// Email reports the problem with an email address, "" when it is valid.
func Email(s string) string {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return MsgEmailInvalid
	}
	at := strings.LastIndexByte(s, '@')
	if at < 1 || !strings.Contains(s[at+1:], ".") || strings.HasSuffix(s, ".") {
		return MsgEmailInvalid
	}
	return ""
}

func Name(s string) string {
	if utf8.RuneCountInString(s) < minNameLen {
		return MsgNameTooShort
	}
	return ""
}

// NewPassword applies the strength rules for a password being chosen.
func NewPassword(s string) string {
	switch {
	case utf8.RuneCountInString(s) < minPasswordLen:
		return MsgPasswordTooShort
	case !upperPattern.MatchString(s):
		return MsgPasswordUppercase
	case !lowerPattern.MatchString(s):
		return MsgPasswordLowercase
	case !digitPattern.MatchString(s):
		return MsgPasswordNumber
	}
	return ""
}

func PhoneNumber(s string) string {
	if utf8.RuneCountInString(s) < minPhoneLen {
		return MsgPhoneTooShort
	}
	if !phonePattern.MatchString(s) {
		return MsgPhoneInvalid
	}
	return ""
}

func Avatar(s string) string {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return MsgAvatarInvalid
	}
	return ""
}

// Login validates the sign-in form.
func Login(email, password string) Errors {
	var errs Errors
	errs.add(FieldEmail, Email(email))
	if password == "" {
		errs.add(FieldPassword, MsgPasswordRequired)
	}
	return errs
}

// Signup validates the registration form.
func Signup(req models.SignupRequest) Errors {
	var errs Errors
	errs.add(FieldName, Name(req.Name))
	errs.add(FieldEmail, Email(req.Email))
	errs.add(FieldPhoneNumber, PhoneNumber(req.PhoneNumber))
	errs.add(FieldPassword, NewPassword(req.Password))
	return errs
}

// Profile validates the fields a patch sets; absent fields are not checked.
func Profile(p models.UserPatch) Errors {
	var errs Errors
	if p.Name != nil {
		errs.add(FieldName, Name(*p.Name))
	}
	if p.Email != nil {
		errs.add(FieldEmail, Email(*p.Email))
	}
	if p.PhoneNumber != nil {
		errs.add(FieldPhoneNumber, PhoneNumber(*p.PhoneNumber))
	}
	if p.Avatar != nil {
		errs.add(FieldAvatar, Avatar(*p.Avatar))
	}
	return errs
}
