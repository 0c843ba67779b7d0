package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/bizcards/internal/common"
	"github.com/google/uuid"
)

type authTokenKey struct{}

func withAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey{}, token)
}

func authTokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(authTokenKey{}).(string)
	return tok
}

// authTransport sets the x-auth-token header from the request context and
// gives every request an X-Request-ID.
type authTransport struct {
	base http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	r.Header.Del(common.AuthTokenHeaderName)
	if tok := authTokenFrom(r.Context()); tok != "" {
		r.Header.Set(common.AuthTokenHeaderName, tok)
	}
	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}
