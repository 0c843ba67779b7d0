package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_RequiresAdmin(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAdminService(fc, &fakeSession{claims: &token.Claims{SubjectID: "u1", IsBusiness: true}}, nil)
	ctx := context.Background()

	_, err := svc.Users(ctx, "")
	require.ErrorIs(t, err, ErrNotPermitted)
	_, err = svc.DeleteUser(ctx, "u2")
	require.ErrorIs(t, err, ErrNotPermitted)
	assert.Equal(t, 0, fc.Calls)
}

func TestAdmin_NeverActsOnAdmins(t *testing.T) {
	fc := &fakeClient{User: &models.User{ID: "a2", IsAdmin: true}}
	svc := NewAdminService(fc, &fakeSession{claims: &token.Claims{SubjectID: "a1", IsAdmin: true}}, nil)
	ctx := context.Background()

	_, err := svc.ToggleBusiness(ctx, "a2")
	require.ErrorIs(t, err, ErrNotPermitted)
	_, err = svc.DeleteUser(ctx, "a2")
	require.ErrorIs(t, err, ErrNotPermitted)
	assert.Equal(t, 2, fc.Calls, "only the lookups reached the backend")
}

func TestAdminFlow_AgainstBackend(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	admin := e.srv.SeedUser(models.User{Email: "root@example.com", Name: models.Name{First: "Root", Last: "Admin"}, IsAdmin: true}, "Abcdefg1!")
	biz := e.srv.SeedUser(models.User{Email: "biz@example.com", Name: models.Name{First: "Bob", Last: "Baker"}, IsBusiness: true}, "pw")
	e.srv.SeedCard(models.Card{Title: "Bakery", OwnerUserID: biz.ID})
	e.srv.SeedCard(models.Card{Title: "Bakery 2", OwnerUserID: biz.ID})

	_, err := e.auth.Login(ctx, "root@example.com", "Abcdefg1!", false)
	require.NoError(t, err)

	rows, err := e.admin.Users(ctx, "business")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, biz.ID, rows[0].ID)
	assert.Equal(t, "business", rows[0].Role)
	assert.Equal(t, 2, rows[0].Cards)

	rows, err = e.admin.Users(ctx, "")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	u, err := e.admin.ToggleBusiness(ctx, biz.ID)
	require.NoError(t, err)
	assert.False(t, u.IsBusiness)

	_, err = e.admin.DeleteUser(ctx, admin.ID)
	require.ErrorIs(t, err, ErrNotPermitted)

	_, err = e.admin.DeleteUser(ctx, biz.ID)
	require.NoError(t, err)
	_, ok := e.srv.User(biz.ID)
	assert.False(t, ok)
}
