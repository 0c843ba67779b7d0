// Package policy derives what the current user may do. Every function is
// pure and accepts nil claims, which stand for a guest.
package policy

import (
	"slices"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/token"
)

type Role string

const (
	RoleGuest    Role = "guest"
	RoleUser     Role = "user"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

func IsLoggedIn(c *token.Claims) bool {
	return c != nil && c.SubjectID != ""
}

// IsOwner reports whether ownerID is the subject of c. An empty ownerID is
// never owned.
func IsOwner(c *token.Claims, ownerID string) bool {
	return IsLoggedIn(c) && ownerID != "" && c.SubjectID == ownerID
}

// CanEdit is owner-only; roles grant no rights over other users' cards.
func CanEdit(c *token.Claims, card *models.Card) bool {
	return card != nil && IsOwner(c, card.OwnerUserID)
}

func CanDelete(c *token.Claims, card *models.Card) bool {
	return CanEdit(c, card)
}

func CanFavorite(c *token.Claims) bool {
	return IsLoggedIn(c)
}

func IsAdmin(c *token.Claims) bool {
	return IsLoggedIn(c) && c.IsAdmin
}

func IsBusiness(c *token.Claims) bool {
	return IsLoggedIn(c) && c.IsBusiness
}

// HasLiked reports whether the subject of c is in likedBy.
func HasLiked(c *token.Claims, likedBy []string) bool {
	return IsLoggedIn(c) && slices.Contains(likedBy, c.SubjectID)
}

// RoleOf returns the highest role of c: admin, then business, then user.
func RoleOf(c *token.Claims) Role {
	switch {
	case !IsLoggedIn(c):
		return RoleGuest
	case c.IsAdmin:
		return RoleAdmin
	case c.IsBusiness:
		return RoleBusiness
	default:
		return RoleUser
	}
}

// CanCreateCard is granted to business accounts and admins.
func CanCreateCard(c *token.Claims) bool {
	return IsBusiness(c) || IsAdmin(c)
}

// CanManageUser gates the admin actions on target: only admins may act, and
// never on another admin.
func CanManageUser(c *token.Claims, target *models.User) bool {
	return IsAdmin(c) && target != nil && !target.IsAdmin
}

// CanViewUsers gates the user-management listing.
func CanViewUsers(c *token.Claims) bool {
	return IsAdmin(c)
}
