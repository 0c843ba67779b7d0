// Package common contains shared constants and sentinel errors used across
// bizcards client components.
package common

// AuthTokenHeaderName is the HTTP header the directory backend reads the
// bearer token from.
const AuthTokenHeaderName = "x-auth-token"

// RequestIDHeaderName correlates a client request with backend logs.
const RequestIDHeaderName = "X-Request-ID"

// Storage keys shared by the durable and ephemeral areas.
const (
	TokenKey = "token"
	ThemeKey = "darkMode"
)
