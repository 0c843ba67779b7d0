package directorytest

import (
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) byEmail(email string) *account {
	for _, id := range s.userOrder {
		if a := s.users[id]; strings.EqualFold(a.user.Email, email) {
			return a
		}
	}
	return nil
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if !decodeBody(w, r, &u) {
		return
	}
	if u.Email == "" || u.Password == "" {
		writeText(w, http.StatusBadRequest, `"email" and "password" are required`)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byEmail(u.Email) != nil {
		writeText(w, http.StatusBadRequest, "User already registered")
		return
	}
	password := u.Password
	u.ID = ""
	u.IsAdmin = false
	writeJSON(w, http.StatusCreated, s.addUser(u, password))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.byEmail(in.Email)
	if a == nil || a.password != in.Password {
		writeText(w, http.StatusBadRequest, "Invalid email or password")
		return
	}
	writeText(w, http.StatusOK, s.mint(a.user))
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	if !id.IsAdmin {
		writeText(w, http.StatusForbidden, "Admin only")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(s.userOrder))
	for _, uid := range s.userOrder {
		out = append(out, s.users[uid].user)
	}
	writeJSON(w, http.StatusOK, out)
}

// target resolves {id} and checks that the caller is that user, or an admin
// when adminAllowed. It writes the error response itself.
func (s *Server) target(w http.ResponseWriter, r *http.Request, adminAllowed bool) (*account, bool) {
	id, _ := identityFrom(r.Context())
	uid := chi.URLParam(r, "id")

	if uid != id.ID && !(adminAllowed && id.IsAdmin) {
		writeText(w, http.StatusForbidden, "Access denied")
		return nil, false
	}
	a, ok := s.users[uid]
	if !ok {
		writeText(w, http.StatusNotFound, "User not found")
		return nil, false
	}
	return a, true
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.target(w, r, true); ok {
		writeJSON(w, http.StatusOK, a.user)
	}
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var p models.ProfileUpdate
	if !decodeBody(w, r, &p) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.target(w, r, false)
	if !ok {
		return
	}
	a.user.Name, a.user.Phone, a.user.Image, a.user.Address = p.Name, p.Phone, p.Image, p.Address
	writeJSON(w, http.StatusOK, a.user)
}

func (s *Server) toggleBusiness(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.target(w, r, true)
	if !ok {
		return
	}
	a.user.IsBusiness = !a.user.IsBusiness
	writeJSON(w, http.StatusOK, a.user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.target(w, r, true)
	if !ok {
		return
	}
	if caller, _ := identityFrom(r.Context()); a.user.IsAdmin && caller.ID != a.user.ID {
		writeText(w, http.StatusForbidden, "Admins cannot be deleted by other users")
		return
	}

	uid := a.user.ID
	delete(s.users, uid)
	s.userOrder = slices.DeleteFunc(s.userOrder, func(x string) bool { return x == uid })
	writeJSON(w, http.StatusOK, a.user)
}
