package session

import "github.com/dmitrijs2005/bizcards/internal/client/token"

// Persistence tells which area the current token came from.
type Persistence string

const (
	PersistenceNone      Persistence = "none"
	PersistenceDurable   Persistence = "durable"
	PersistenceEphemeral Persistence = "ephemeral"
)

type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged-in"
	}
	return "logged-out"
}

type EventKind string

const (
	EventLogin        EventKind = "login"
	EventLogout       EventKind = "logout"
	EventForcedLogout EventKind = "forced-logout"
	// EventExternal is a change picked up from storage: another process
	// logged in or out, or the store re-initialized with a different result.
	EventExternal EventKind = "external"
)

// Event is delivered to subscribers after the state changed. Claims is nil
// when the new state is LoggedOut. Cause is set for forced logouts.
type Event struct {
	Kind        EventKind
	State       State
	Claims      *token.Claims
	Persistence Persistence
	Cause       error
}

// Listener receives events synchronously on the goroutine that caused them.
type Listener func(Event)
