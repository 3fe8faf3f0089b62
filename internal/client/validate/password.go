package validate

import "unicode/utf8"

// Check is one line of the password strength checklist.
type Check struct {
	Label string
	Valid bool
}

// PasswordChecks evaluates the checklist shown next to the password field.
func PasswordChecks(password string) []Check {
	return []Check{
		{Label: "At least 8 characters", Valid: utf8.RuneCountInString(password) >= minPasswordLen},
		{Label: "One uppercase letter", Valid: upperPattern.MatchString(password)},
		{Label: "One lowercase letter", Valid: lowerPattern.MatchString(password)},
		{Label: "One number", Valid: digitPattern.MatchString(password)},
	}
}
