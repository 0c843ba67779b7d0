// Package token decodes the bearer tokens issued by the directory backend.
//
// Decoding is structural only: the signature and the expiry are not checked
// on the client. The backend remains the authority and rejects stale or
// forged tokens with 401, which the session layer turns into a forced logout.
package token

import "time"

// Claims is the decoded payload of a token.
type Claims struct {
	SubjectID  string
	IsAdmin    bool
	IsBusiness bool
	IssuedAt   time.Time
	ExpiresAt  time.Time
}
