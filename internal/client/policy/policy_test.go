package policy

import (
	"testing"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/token"
	"github.com/stretchr/testify/assert"
)

func claims(id string, admin, business bool) *token.Claims {
	return &token.Claims{SubjectID: id, IsAdmin: admin, IsBusiness: business}
}

func TestNilClaimsAreGuest(t *testing.T) {
	card := &models.Card{OwnerUserID: "u1"}

	assert.False(t, IsLoggedIn(nil))
	assert.False(t, IsOwner(nil, "u1"))
	assert.False(t, IsOwner(nil, ""))
	assert.False(t, CanEdit(nil, card))
	assert.False(t, CanDelete(nil, card))
	assert.False(t, CanFavorite(nil))
	assert.False(t, IsAdmin(nil))
	assert.False(t, HasLiked(nil, []string{"u1"}))
	assert.False(t, CanCreateCard(nil))
	assert.False(t, CanManageUser(nil, &models.User{}))
	assert.Equal(t, RoleGuest, RoleOf(nil))
}

func TestIsOwner_Properties(t *testing.T) {
	for _, id := range []string{"u1", "64f0c1", "x"} {
		c := claims(id, false, false)
		assert.True(t, IsOwner(c, c.SubjectID), id)
		assert.False(t, IsOwner(c, id+"-other"), id)
	}
	assert.False(t, IsOwner(claims("u1", false, false), ""))
	assert.False(t, IsOwner(&token.Claims{}, ""), "empty subject owns nothing")
}

func TestOwnerScenario(t *testing.T) {
	c := claims("u1", false, true)
	own := &models.Card{OwnerUserID: "u1"}
	foreign := &models.Card{OwnerUserID: "u2"}

	assert.True(t, CanEdit(c, own))
	assert.True(t, CanDelete(c, own))
	assert.False(t, CanEdit(c, foreign))
	assert.False(t, CanDelete(c, foreign))

	assert.True(t, CanFavorite(c))
	assert.True(t, CanFavorite(claims("u3", false, false)))
	assert.False(t, CanEdit(c, nil))
}

func TestElevatedRolesDoNotGrantCardRights(t *testing.T) {
	foreign := &models.Card{OwnerUserID: "u2"}

	assert.False(t, CanEdit(claims("admin", true, false), foreign))
	assert.False(t, CanDelete(claims("admin", true, true), foreign))
	assert.False(t, CanEdit(claims("biz", false, true), foreign))
}

func TestHasLiked(t *testing.T) {
	u1 := claims("u1", false, false)

	assert.False(t, HasLiked(u1, []string{}))
	assert.False(t, HasLiked(u1, nil))
	assert.True(t, HasLiked(u1, []string{"u1", "u2"}))
	assert.False(t, HasLiked(u1, []string{"u2"}))
}

func TestRoleOf(t *testing.T) {
	tests := []struct {
		c    *token.Claims
		want Role
	}{
		{claims("u", false, false), RoleUser},
		{claims("u", false, true), RoleBusiness},
		{claims("u", true, false), RoleAdmin},
		{claims("u", true, true), RoleAdmin},
		{&token.Claims{IsAdmin: true}, RoleGuest},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoleOf(tt.c))
	}
}

func TestCanCreateCard(t *testing.T) {
	assert.False(t, CanCreateCard(claims("u", false, false)))
	assert.True(t, CanCreateCard(claims("u", false, true)))
	assert.True(t, CanCreateCard(claims("u", true, false)))
}

func TestCanManageUser(t *testing.T) {
	admin := claims("a", true, false)

	assert.True(t, CanManageUser(admin, &models.User{ID: "u"}))
	assert.False(t, CanManageUser(admin, &models.User{ID: "a2", IsAdmin: true}))
	assert.False(t, CanManageUser(admin, nil))
	assert.False(t, CanManageUser(claims("b", false, true), &models.User{ID: "u"}))
	assert.True(t, CanViewUsers(admin))
	assert.False(t, CanViewUsers(claims("b", false, true)))
}
