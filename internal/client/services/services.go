// Package services contains the application services of the bizcards
// client: authentication and profile, the card directory and admin user
// management. Every operation checks the local policy and validates input
// before it reaches the network.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bizcards/internal/client/token"
)

var (
	// ErrNotPermitted is returned when the local policy denies an action.
	ErrNotPermitted = errors.New("not permitted")
	ErrNotLoggedIn  = fmt.Errorf("%w: login required", ErrNotPermitted)
	// ErrAccountDeleted is the cause attached to the logout that follows
	// account deletion.
	ErrAccountDeleted = errors.New("account deleted")
)

// Session is the part of session.Store the services depend on.
type Session interface {
	Login(ctx context.Context, raw string, remember bool) (*token.Claims, error)
	Logout(ctx context.Context) error
	ForceLogout(ctx context.Context, cause error) error
	CurrentClaims() *token.Claims
}

func requireLogin(s Session) (*token.Claims, error) {
	c := s.CurrentClaims()
	if c == nil {
		return nil, ErrNotLoggedIn
	}
	return c, nil
}
