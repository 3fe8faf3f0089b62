// Package models holds the wire types exchanged with the PhishShield API.
package models

import "time"

// User is the identity record of an authenticated account.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	Credits     int       `json:"credits"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserPatch is a partial profile update. Nil fields are left out of the
// request body and keep their server-side value.
type UserPatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Credits     *int    `json:"credits,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.PhoneNumber == nil && p.Avatar == nil && p.Credits == nil
}

// Apply returns u with every non-nil field of p merged in.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Credits != nil {
		u.Credits = *p.Credits
	}
	return u
}

// Ptr returns a pointer to v. Handy for building a UserPatch.
func Ptr[T any](v T) *T {
	return &v
}
