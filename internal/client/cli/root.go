package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bizcards/internal/client/policy"
)

const ansiReset = "\033[0m"

func (a *App) role() policy.Role {
	return policy.RoleOf(a.session.CurrentClaims())
}

// getStatus describes who is logged in and whether the backend answers,
// e.g. "(alice business online)".
func (a *App) getStatus() string {
	var parts []string

	claims := a.session.CurrentClaims()
	a.mu.Lock()
	name, mode := a.userName, a.mode
	a.mu.Unlock()

	if claims != nil {
		if name == "" {
			name = shortID(claims.SubjectID)
		}
		parts = append(parts, name, string(policy.RoleOf(claims)))
	}
	if mode != "" {
		parts = append(parts, string(mode))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// prompt prints pending notifications and returns the REPL prompt, with
// the program name in the accent color of the current theme.
func (a *App) prompt() string {
	a.flushNotifications()

	name := "bizcards"
	if a.theme != nil {
		name = a.theme.Current().Accent() + name + ansiReset
	}
	if s := a.getStatus(); s != "" {
		return name + " " + s
	}
	return name
}

func (a *App) flushNotifications() {
	for _, n := range a.notes.Drain() {
		fmt.Fprintf(a.out, "%s %s\n", n.Level.Icon(), n.Message)
	}
}

// Root prints the greeting and blocks in the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to bizcards CLI (type 'help' for commands)")
	runREPL(ctx, a, a.prompt, a.reader)
	a.flushNotifications()
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
