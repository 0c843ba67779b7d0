package directorytest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/bizcards/internal/authtoken"
	"github.com/dmitrijs2005/bizcards/internal/common"
)

type identity struct {
	ID         string
	IsAdmin    bool
	IsBusiness bool
}

type identityKey struct{}

func identityFrom(ctx context.Context) (identity, bool) {
	id, ok := ctx.Value(identityKey{}).(identity)
	return id, ok
}

// authenticate verifies x-auth-token when present. An invalid token is
// rejected with 401 even on public routes, like the real backend does.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(common.AuthTokenHeaderName)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		s.mu.Lock()
		secret := s.secret
		s.mu.Unlock()

		claims, err := authtoken.ParseToken(raw, secret)
		if err != nil {
			writeText(w, http.StatusUnauthorized, "Invalid Token")
			return
		}
		id := identity{ID: claims.UserID, IsAdmin: claims.IsAdmin, IsBusiness: claims.IsBusiness}

		s.mu.Lock()
		_, known := s.users[id.ID]
		s.mu.Unlock()
		if !known {
			writeText(w, http.StatusUnauthorized, "User not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
	})
}

func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identityFrom(r.Context()); !ok {
			writeText(w, http.StatusUnauthorized, "Access denied. No token provided")
			return
		}
		next.ServeHTTP(w, r)
	})
}
