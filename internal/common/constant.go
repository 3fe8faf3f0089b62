// Package common contains shared constants and sentinel errors used across
// PhishShield components.
package common

// Header names and values used on outbound API requests.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	RequestIDHeader     = "X-Request-Id"
)

// Metadata keys of the persistent credential slot.
const (
	AuthTokenKey        = "authToken"
	AuthTokenSavedAtKey = "authTokenSavedAt"
)
