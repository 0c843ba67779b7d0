// Package client talks to the business-card directory backend.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic contracts for the backend (CardClient, UserClient
//     and the combined Client interface).
//  2. A REST implementation (HTTPClient) that injects the session token in
//     the x-auth-token header through a RoundTripper, tags every request with
//     an X-Request-ID, decodes responses at the boundary into models and maps
//     HTTP statuses to sentinel errors.
//
// # Error Handling
//
// Network failures wrap ErrUnavailable. Non-2xx responses are returned as
// *HTTPError, which unwraps to ErrBadRequest, ErrUnauthorized, ErrForbidden,
// ErrNotFound or ErrUnavailable depending on the status. A 401 on a request
// that carried a token is also reported to the handler registered with
// WithUnauthorizedHandler, which the application uses to force a logout.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call takes a context.Context
// and honors its cancellation.
package client
