package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bizcards/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DecodeError reports a structurally invalid token. It matches
// common.ErrInvalidToken under errors.Is.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode token: %s: %v", e.Reason, e.Err)
	}
	return "decode token: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == common.ErrInvalidToken }

// Decoder turns a raw token into Claims.
type Decoder interface {
	Decode(raw string) (*Claims, error)
}

// wireClaims mirrors the payload the backend signs: its own "_id",
// "isBusiness" and "isAdmin" fields next to the registered ones.
type wireClaims struct {
	ID         string `json:"_id"`
	IsBusiness bool   `json:"isBusiness"`
	IsAdmin    bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Codec is the Decoder used in production. The zero value is ready to use.
type Codec struct{}

func NewCodec() *Codec { return &Codec{} }

// Decode parses raw without verifying it. It fails with *DecodeError when
// raw is not three base64url segments, when header or payload are not JSON,
// or when no subject id is present.
func (Codec) Decode(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &DecodeError{Reason: "empty token"}
	}
	if strings.Count(raw, ".") != 2 {
		return nil, &DecodeError{Reason: "token must have three segments"}
	}

	var wc wireClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &wc); err != nil {
		return nil, &DecodeError{Reason: "malformed token", Err: err}
	}

	subject := wc.ID
	if subject == "" {
		subject = wc.Subject
	}
	if subject == "" {
		return nil, &DecodeError{Reason: "missing subject id"}
	}

	c := &Claims{
		SubjectID:  subject,
		IsAdmin:    wc.IsAdmin,
		IsBusiness: wc.IsBusiness,
	}
	if wc.IssuedAt != nil {
		c.IssuedAt = wc.IssuedAt.Time
	}
	if wc.ExpiresAt != nil {
		c.ExpiresAt = wc.ExpiresAt.Time
	}
	return c, nil
}

// IsDecodeError reports whether err is (or wraps) a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
