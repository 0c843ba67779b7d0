// Package directorytest provides an in-memory business-card directory
// backend for tests. It speaks the same REST dialect as the real service:
// tokens in x-auth-token, plain-text error bodies and a text token on login.
package directorytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bizcards/internal/authtoken"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Request is what the server saw of one call.
type Request struct {
	Method    string
	Path      string
	Token     string
	RequestID string
}

type account struct {
	user     models.User
	password string
}

type Server struct {
	URL string

	srv    *httptest.Server
	secret []byte
	now    func() time.Time

	mu        sync.Mutex
	users     map[string]*account
	userOrder []string
	cards     map[string]*models.Card
	cardOrder []string
	nextBiz   int
	down      bool
	requests  []Request
}

// New starts a server that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()
	s := NewUnstarted()
	s.Start()
	t.Cleanup(s.Close)
	return s
}

// NewUnstarted returns a server whose Handler can be mounted elsewhere.
func NewUnstarted() *Server {
	return &Server{
		secret:  []byte(uuid.NewString()),
		now:     time.Now,
		users:   make(map[string]*account),
		cards:   make(map[string]*models.Card),
		nextBiz: 1000000,
	}
}

func (s *Server) Start() {
	s.srv = httptest.NewServer(s.Handler())
	s.URL = s.srv.URL
}

func (s *Server) Close() {
	if s.srv != nil {
		s.srv.Close()
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(s.record)
	r.Use(s.availability)
	r.Use(s.authenticate)

	r.Route("/cards", func(r chi.Router) {
		r.Get("/", s.listCards)
		r.With(requireAuth).Get("/my-cards", s.myCards)
		r.Get("/{id}", s.getCard)
		r.With(requireAuth).Post("/", s.createCard)
		r.With(requireAuth).Put("/{id}", s.updateCard)
		r.With(requireAuth).Delete("/{id}", s.deleteCard)
		r.With(requireAuth).Patch("/{id}", s.toggleLike)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.register)
		r.Post("/login", s.login)
		r.With(requireAuth).Get("/", s.listUsers)
		r.With(requireAuth).Get("/{id}", s.getUser)
		r.With(requireAuth).Put("/{id}", s.updateUser)
		r.With(requireAuth).Patch("/{id}", s.toggleBusiness)
		r.With(requireAuth).Delete("/{id}", s.deleteUser)
	})

	return r
}

// SetDown makes every request fail with 503 until called with false.
func (s *Server) SetDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

// RevokeTokens rotates the signing secret so every token issued so far is
// rejected with 401.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secret = []byte(uuid.NewString())
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// SeedUser stores u with password and returns it with its id.
func (s *Server) SeedUser(u models.User, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUser(u, password)
}

// SeedCard stores c as is, assigning an id and timestamps if missing.
func (s *Server) SeedCard(c models.Card) models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCard(c)
}

// Mint issues a token for u the way login does.
func (s *Server) Mint(u models.User) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mint(u)
}

// Card returns a copy of the stored card.
func (s *Server) Card(id string) (models.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok {
		return models.Card{}, false
	}
	cp := *c
	cp.LikedBy = slices.Clone(c.LikedBy)
	return cp, true
}

// User returns a copy of the stored user.
func (s *Server) User(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	return a.user, true
}

func (s *Server) mint(u models.User) string {
	tok, err := authtoken.GenerateToken(authtoken.Claims{
		UserID:     u.ID,
		IsAdmin:    u.IsAdmin,
		IsBusiness: u.IsBusiness,
	}, s.secret, s.now(), 0)
	if err != nil {
		panic(fmt.Sprintf("directorytest: sign token: %v", err))
	}
	return tok
}

func (s *Server) addUser(u models.User, password string) models.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now().UTC()
	}
	u.Password = ""
	s.users[u.ID] = &account{user: u, password: password}
	s.userOrder = append(s.userOrder, u.ID)
	return u
}

func (s *Server) addCard(c models.Card) models.Card {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now().UTC()
	}
	if c.BizNumber == 0 {
		s.nextBiz++
		c.BizNumber = s.nextBiz
	}
	if c.LikedBy == nil {
		c.LikedBy = []string{}
	}
	cp := c
	s.cards[c.ID] = &cp
	s.cardOrder = append(s.cardOrder, c.ID)
	return c
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			Token:     r.Header.Get(common.AuthTokenHeaderName),
			RequestID: r.Header.Get(common.RequestIDHeaderName),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) availability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		down := s.down
		s.mu.Unlock()
		if down {
			writeText(w, http.StatusServiceUnavailable, "Service Unavailable")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody answers 400 itself and reports false on a bad body.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeText(w, http.StatusBadRequest, "invalid body: "+strings.TrimSpace(err.Error()))
		return false
	}
	return true
}
