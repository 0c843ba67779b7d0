// Package cli provides the interactive bizcards command-line client.
//
// It wires configuration, the durable session area (SQLite or Redis), the
// card directory client and the application services into a REPL. Several
// CLI processes of one user share the durable area: a remembered login, a
// logout or a theme switch in one of them shows up in the others through
// the area's change feed.
//
// Key features:
//   - Register / Login (optionally remembered) / Logout
//   - Browse, search and page through the public card listing, offline from
//     the last fetched copy when the SQLite store is used
//   - Favorites, own cards, create / edit / delete cards
//   - Profile view and edit, business flag, account deletion
//   - Admin user management
//   - Light / dark theme, online indicator, transient notifications
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
