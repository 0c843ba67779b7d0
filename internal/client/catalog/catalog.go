// Package catalog filters and pages card and user listings on the client.
package catalog

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

const DefaultPerPage = 12

// Filter keeps the items for which any of fields contains query,
// ignoring case. An empty query keeps everything.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return slices.Clone(items)
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// SearchCards matches title, subtitle and description.
func SearchCards(cards []models.Card, query string) []models.Card {
	return Filter(cards, query, func(c models.Card) []string {
		return []string{c.Title, c.Subtitle, c.Description}
	})
}

// UserRole is the label shown and searched in the user listing.
func UserRole(u models.User) string {
	switch {
	case u.IsAdmin:
		return "admin"
	case u.IsBusiness:
		return "business"
	default:
		return "customer"
	}
}

// SearchUsers matches "first last", email and role label.
func SearchUsers(users []models.User, query string) []models.User {
	return Filter(users, query, func(u models.User) []string {
		return []string{u.Name.First + " " + u.Name.Last, u.Email, UserRole(u)}
	})
}

// FavoritesOf returns the cards liked by userID.
func FavoritesOf(cards []models.Card, userID string) []models.Card {
	if userID == "" {
		return []models.Card{}
	}
	out := make([]models.Card, 0)
	for _, c := range cards {
		if slices.Contains(c.LikedBy, userID) {
			out = append(out, c)
		}
	}
	return out
}

// CountByOwner maps each owner id to the number of cards it owns.
func CountByOwner(cards []models.Card) map[string]int {
	out := make(map[string]int)
	for _, c := range cards {
		out[c.OwnerUserID]++
	}
	return out
}
