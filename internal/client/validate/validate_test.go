package validate

import (
	"testing"

	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"user@phishshield.ai", true},
		{"first.last+tag@example.co.uk", true},
		{"", false},
		{"plainaddress", false},
		{"user@localhost", false},
		{"John <john@example.com>", false},
		{"user@example.", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if tt.valid {
				assert.Empty(t, Email(tt.in))
			} else {
				assert.Equal(t, MsgEmailInvalid, Email(tt.in))
			}
		})
	}
}

func TestNewPassword(t *testing.T) {
	assert.Equal(t, MsgPasswordTooShort, NewPassword("Ab1"))
	assert.Equal(t, MsgPasswordUppercase, NewPassword("abcdefg1"))
	assert.Equal(t, MsgPasswordLowercase, NewPassword("ABCDEFG1"))
	assert.Equal(t, MsgPasswordNumber, NewPassword("Abcdefgh"))
	assert.Empty(t, NewPassword("Abcdefg1"))
}

func TestPhoneNumber(t *testing.T) {
	assert.Empty(t, PhoneNumber("+1 (555) 123-4567"))
	assert.Empty(t, PhoneNumber("5551234567"))
	assert.Equal(t, MsgPhoneTooShort, PhoneNumber("12345"))
	assert.Equal(t, MsgPhoneInvalid, PhoneNumber("555-CALL-NOW"))
	assert.Equal(t, MsgPhoneInvalid, PhoneNumber("1+5551234567"))
}

func TestLogin(t *testing.T) {
	assert.False(t, Login("user@phishshield.ai", "password").Any())

	errs := Login("bad", "")
	assert.True(t, errs.Any())
	assert.Equal(t, MsgEmailInvalid, errs.Get(FieldEmail))
	assert.Equal(t, MsgPasswordRequired, errs.Get(FieldPassword))
	assert.Equal(t, MsgEmailInvalid, errs.Summary())
}

func TestSignup(t *testing.T) {
	ok := models.SignupRequest{Name: "Jo", Email: "jo@example.com", Password: "Secret123", PhoneNumber: "+15551234567"}
	assert.False(t, Signup(ok).Any())

	errs := Signup(models.SignupRequest{Name: "J", Email: "jo@example.com", Password: "secret", PhoneNumber: "123"})
	assert.Equal(t, Errors{
		{Field: FieldName, Message: MsgNameTooShort},
		{Field: FieldPhoneNumber, Message: MsgPhoneTooShort},
		{Field: FieldPassword, Message: MsgPasswordTooShort},
	}, errs)
	assert.Equal(t, "name: Name must be at least 2 characters; phoneNumber: Phone number must be at least 10 digits; password: Password must be at least 8 characters", errs.Error())
}

func TestProfile_OnlySuppliedFields(t *testing.T) {
	assert.False(t, Profile(models.UserPatch{}).Any())
	assert.False(t, Profile(models.UserPatch{Name: models.Ptr("Jane")}).Any())

	errs := Profile(models.UserPatch{Email: models.Ptr("nope"), Avatar: models.Ptr("ftp://x")})
	assert.Equal(t, MsgEmailInvalid, errs.Get(FieldEmail))
	assert.Equal(t, MsgAvatarInvalid, errs.Get(FieldAvatar))
	assert.Empty(t, errs.Get(FieldName))
}

func TestPasswordChecks(t *testing.T) {
	checks := PasswordChecks("abc1")
	assert.Equal(t, []Check{
		{Label: "At least 8 characters", Valid: false},
		{Label: "One uppercase letter", Valid: false},
		{Label: "One lowercase letter", Valid: true},
		{Label: "One number", Valid: true},
	}, checks)

	for _, c := range PasswordChecks("Abcdefg1") {
		assert.True(t, c.Valid, c.Label)
	}
}
