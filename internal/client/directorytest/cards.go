package directorytest

import (
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) cardList(keep func(*models.Card) bool) []models.Card {
	out := make([]models.Card, 0, len(s.cardOrder))
	for _, id := range s.cardOrder {
		c := s.cards[id]
		if keep == nil || keep(c) {
			cp := *c
			cp.LikedBy = slices.Clone(c.LikedBy)
			out = append(out, cp)
		}
	}
	return out
}

func (s *Server) listCards(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.cardList(nil))
}

func (s *Server) myCards(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.cardList(func(c *models.Card) bool { return c.OwnerUserID == id.ID }))
}

func (s *Server) getCard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cards[chi.URLParam(r, "id")]
	if !ok {
		writeText(w, http.StatusNotFound, "Card not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func checkCard(in models.CardInput) string {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return `"title" is required`
	case strings.TrimSpace(in.Email) == "":
		return `"email" is required`
	}
	return ""
}

func (s *Server) createCard(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	if !id.IsBusiness && !id.IsAdmin {
		writeText(w, http.StatusForbidden, "Only business users can create cards")
		return
	}

	var in models.CardInput
	if !decodeBody(w, r, &in) {
		return
	}
	if msg := checkCard(in); msg != "" {
		writeText(w, http.StatusBadRequest, msg)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.addCard(models.Card{
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Description: in.Description,
		Phone:       in.Phone,
		Email:       in.Email,
		Web:         in.Web,
		Image:       in.Image,
		Address:     in.Address,
		OwnerUserID: id.ID,
	})
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCard(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	var in models.CardInput
	if !decodeBody(w, r, &in) {
		return
	}
	if msg := checkCard(in); msg != "" {
		writeText(w, http.StatusBadRequest, msg)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cards[chi.URLParam(r, "id")]
	if !ok {
		writeText(w, http.StatusNotFound, "Card not found")
		return
	}
	if c.OwnerUserID != id.ID {
		writeText(w, http.StatusForbidden, "Only the card owner can edit it")
		return
	}

	c.Title, c.Subtitle, c.Description = in.Title, in.Subtitle, in.Description
	c.Phone, c.Email, c.Web = in.Phone, in.Email, in.Web
	c.Image, c.Address = in.Image, in.Address
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCard(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	cardID := chi.URLParam(r, "id")
	c, ok := s.cards[cardID]
	if !ok {
		writeText(w, http.StatusNotFound, "Card not found")
		return
	}
	if c.OwnerUserID != id.ID && !id.IsAdmin {
		writeText(w, http.StatusForbidden, "Only the card owner or an admin can delete it")
		return
	}

	delete(s.cards, cardID)
	s.cardOrder = slices.DeleteFunc(s.cardOrder, func(x string) bool { return x == cardID })
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) toggleLike(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cards[chi.URLParam(r, "id")]
	if !ok {
		writeText(w, http.StatusNotFound, "Card not found")
		return
	}

	if i := slices.Index(c.LikedBy, id.ID); i >= 0 {
		c.LikedBy = slices.Delete(c.LikedBy, i, i+1)
	} else {
		c.LikedBy = append(c.LikedBy, id.ID)
	}
	writeJSON(w, http.StatusOK, c)
}
