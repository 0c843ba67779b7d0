// Package session holds the client's authentication state.
//
// A Store is constructed once per process and passed to whoever needs it.
// The token lives in exactly one of two areas: durable (shared with other
// client processes, survives restarts) when the user asked to be remembered,
// ephemeral (this process only) otherwise. Logout clears both.
//
// Every state change is published to subscribers through one path, whether
// it was caused locally (Login, Logout, ForceLogout) or by another process
// writing the durable area (Watch).
package session
