package common

import "errors"

// ErrInvalidToken is returned for tokens that are malformed, badly signed,
// expired or missing the user id.
var ErrInvalidToken = errors.New("invalid token")
