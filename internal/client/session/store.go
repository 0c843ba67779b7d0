package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bizcards/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bizcards/internal/client/token"
	"github.com/dmitrijs2005/bizcards/internal/common"
	"github.com/dmitrijs2005/bizcards/internal/logging"
)

type subscriber struct {
	id uint64
	fn Listener
}

// Store is the process-wide session holder. It is safe for concurrent use;
// listeners are always invoked without internal locks held.
type Store struct {
	durable   metadata.Repository
	ephemeral metadata.Repository
	codec     token.Decoder
	log       logging.Logger

	mu          sync.RWMutex
	raw         string
	claims      *token.Claims
	persistence Persistence

	subsMu sync.Mutex
	subs   []subscriber
	nextID uint64
}

func NewStore(durable, ephemeral metadata.Repository, codec token.Decoder, log logging.Logger) *Store {
	if codec == nil {
		codec = token.NewCodec()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		durable:     durable,
		ephemeral:   ephemeral,
		codec:       codec,
		log:         log.With("component", "session"),
		persistence: PersistenceNone,
	}
}

// Initialize loads the session from storage: the ephemeral area first, then
// the durable one. A token that fails to decode is removed from both areas
// and the store ends up logged out. Subscribers are notified only if the
// resulting state differs from the previous one.
func (s *Store) Initialize(ctx context.Context) error {
	ev, err := s.reload(ctx)
	if ev != nil {
		s.publish(*ev)
	}
	return err
}

func (s *Store) reload(ctx context.Context) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, p, err := s.findToken(ctx)
	if err != nil {
		return nil, err
	}

	if raw == s.raw && p == s.persistence {
		return nil, nil
	}

	if raw == "" {
		s.set("", nil, PersistenceNone)
		s.log.Info(ctx, "no stored session")
		return s.event(EventExternal, nil), nil
	}

	claims, err := s.codec.Decode(raw)
	if err != nil {
		s.log.Warn(ctx, "stored token is corrupt, clearing it", "persistence", p, "error", err)
		if clearErr := s.clearAreas(ctx); clearErr != nil {
			s.log.Error(ctx, "failed to clear corrupt token", "error", clearErr)
		}
		wasLoggedIn := s.claims != nil
		s.set("", nil, PersistenceNone)
		if !wasLoggedIn {
			return nil, nil
		}
		return s.event(EventForcedLogout, err), nil
	}

	s.set(raw, claims, p)
	s.log.Info(ctx, "session restored", "persistence", p, "user", claims.SubjectID)
	return s.event(EventExternal, nil), nil
}

// findToken returns the first token found, ephemeral area first.
func (s *Store) findToken(ctx context.Context) (string, Persistence, error) {
	areas := []struct {
		repo metadata.Repository
		p    Persistence
	}{
		{s.ephemeral, PersistenceEphemeral},
		{s.durable, PersistenceDurable},
	}

	for _, a := range areas {
		v, err := a.repo.Get(ctx, common.TokenKey)
		if err != nil {
			return "", PersistenceNone, fmt.Errorf("read %s token: %w", a.p, err)
		}
		if len(v) > 0 {
			return string(v), a.p, nil
		}
	}
	return "", PersistenceNone, nil
}

// Login stores raw in the durable area when remember is set, otherwise in
// the ephemeral one, and removes it from the other area. A token that does
// not decode is rejected before anything is written.
func (s *Store) Login(ctx context.Context, raw string, remember bool) (*token.Claims, error) {
	claims, err := s.codec.Decode(raw)
	if err != nil {
		return nil, err
	}

	target, other, p := s.ephemeral, s.durable, PersistenceEphemeral
	if remember {
		target, other, p = s.durable, s.ephemeral, PersistenceDurable
	}

	s.mu.Lock()
	if err := target.Set(ctx, common.TokenKey, []byte(raw)); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("store %s token: %w", p, err)
	}
	if err := other.Delete(ctx, common.TokenKey); err != nil {
		rollbackErr := target.Delete(ctx, common.TokenKey)
		s.mu.Unlock()
		if rollbackErr != nil {
			rollbackErr = fmt.Errorf("roll back %s token: %w", p, rollbackErr)
		}
		return nil, errors.Join(fmt.Errorf("clear stale token: %w", err), rollbackErr)
	}
	s.set(raw, claims, p)
	ev := s.event(EventLogin, nil)
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "persistence", p, "user", claims.SubjectID)
	s.publish(*ev)
	return copyClaims(claims), nil
}

// Logout removes the token from both areas and clears the session. It is
// idempotent; subscribers hear about it only when a session was active.
func (s *Store) Logout(ctx context.Context) error {
	return s.logout(ctx, EventLogout, nil)
}

// ForceLogout is Logout triggered by the system rather than the user, e.g.
// when the backend rejected the token. cause is attached to the event.
func (s *Store) ForceLogout(ctx context.Context, cause error) error {
	return s.logout(ctx, EventForcedLogout, cause)
}

// ForceLogoutIfToken is ForceLogout limited to the session that used raw.
// It does nothing and reports false when the active token is a different
// one, so a rejection of an old token never ends a newer session.
func (s *Store) ForceLogoutIfToken(ctx context.Context, raw string, cause error) (bool, error) {
	s.mu.Lock()
	if raw == "" || raw != s.raw {
		s.mu.Unlock()
		s.log.Debug(ctx, "ignoring rejection of a token no longer in use", "cause", cause)
		return false, nil
	}
	return true, s.logoutLocked(ctx, EventForcedLogout, cause)
}

func (s *Store) logout(ctx context.Context, kind EventKind, cause error) error {
	s.mu.Lock()
	return s.logoutLocked(ctx, kind, cause)
}

// logoutLocked must be called with mu held; it releases it.
func (s *Store) logoutLocked(ctx context.Context, kind EventKind, cause error) error {
	err := s.clearAreas(ctx)
	wasLoggedIn := s.claims != nil
	s.set("", nil, PersistenceNone)
	ev := s.event(kind, cause)
	s.mu.Unlock()

	if err != nil {
		s.log.Error(ctx, "failed to clear stored token", "error", err)
	}
	if wasLoggedIn {
		s.log.Info(ctx, "logged out", "kind", kind, "cause", cause)
		s.publish(*ev)
	}
	return err
}

// clearAreas always attempts both removals.
func (s *Store) clearAreas(ctx context.Context) error {
	return errors.Join(
		s.ephemeral.Delete(ctx, common.TokenKey),
		s.durable.Delete(ctx, common.TokenKey),
	)
}

// CurrentClaims returns a copy of the active claims, or nil when logged out.
func (s *Store) CurrentClaims() *token.Claims {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyClaims(s.claims)
}

// Token returns the raw bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

func (s *Store) Persistence() Persistence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistence
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil {
		return LoggedOut
	}
	return LoggedIn
}

// Subscribe registers l for every future event. The returned func removes
// it and may be called more than once.
func (s *Store) Subscribe(l Listener) (cancel func()) {
	s.subsMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: l})
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Watch re-initializes the store each time n reports a change of the token
// key, until ctx is done. It returns an error if the feed could not be
// opened or ended on its own (metadata.ErrFeedClosed).
func (s *Store) Watch(ctx context.Context, n metadata.Notifier) error {
	changes, err := n.Changes(ctx)
	if err != nil {
		return fmt.Errorf("watch session storage: %w", err)
	}

	for c := range changes {
		if c.Key != "" && c.Key != common.TokenKey {
			continue
		}
		if err := s.Initialize(ctx); err != nil {
			s.log.Warn(ctx, "failed to reload session", "error", err)
		}
	}
	if ctx.Err() == nil {
		return fmt.Errorf("watch session storage: %w", metadata.ErrFeedClosed)
	}
	return nil
}

func (s *Store) publish(ev Event) {
	s.subsMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
}

// set must be called with mu held.
func (s *Store) set(raw string, claims *token.Claims, p Persistence) {
	s.raw = raw
	s.claims = claims
	s.persistence = p
}

// event must be called with mu held.
func (s *Store) event(kind EventKind, cause error) *Event {
	st := LoggedOut
	if s.claims != nil {
		st = LoggedIn
	}
	return &Event{
		Kind:        kind,
		State:       st,
		Claims:      copyClaims(s.claims),
		Persistence: s.persistence,
		Cause:       cause,
	}
}

func copyClaims(c *token.Claims) *token.Claims {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
