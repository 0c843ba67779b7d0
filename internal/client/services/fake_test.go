package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/directorytest"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bizcards/internal/client/session"
	"github.com/dmitrijs2005/bizcards/internal/client/token"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

// fakeClient implements client.Client and counts the calls that reached it.
type fakeClient struct {
	Calls int

	Card    *models.Card
	Cards   []models.Card
	User    *models.User
	Users   []models.User
	Token   string
	Err     error
	PingErr error

	LastEmail string
}

func (f *fakeClient) hit() error { f.Calls++; return f.Err }

func (f *fakeClient) ListCards(context.Context) ([]models.Card, error) { return f.Cards, f.hit() }

func (f *fakeClient) GetCard(context.Context, string) (*models.Card, error) { return f.Card, f.hit() }

func (f *fakeClient) MyCards(context.Context) ([]models.Card, error) { return f.Cards, f.hit() }

func (f *fakeClient) CreateCard(context.Context, models.CardInput) (*models.Card, error) {
	return f.Card, f.hit()
}

func (f *fakeClient) UpdateCard(context.Context, string, models.CardInput) (*models.Card, error) {
	return f.Card, f.hit()
}

func (f *fakeClient) DeleteCard(context.Context, string) (*models.Card, error) {
	return f.Card, f.hit()
}

func (f *fakeClient) ToggleLike(context.Context, string) (*models.Card, error) {
	return f.Card, f.hit()
}

func (f *fakeClient) Register(_ context.Context, u *models.User) (*models.User, error) {
	f.LastEmail = u.Email
	return f.User, f.hit()
}

func (f *fakeClient) Login(_ context.Context, email, _ string) (string, error) {
	f.LastEmail = email
	return f.Token, f.hit()
}

func (f *fakeClient) GetUser(context.Context, string) (*models.User, error) { return f.User, f.hit() }

func (f *fakeClient) ListUsers(context.Context) ([]models.User, error) { return f.Users, f.hit() }

func (f *fakeClient) UpdateUser(context.Context, string, models.ProfileUpdate) (*models.User, error) {
	return f.User, f.hit()
}

func (f *fakeClient) ToggleBusiness(context.Context, string) (*models.User, error) {
	return f.User, f.hit()
}

func (f *fakeClient) DeleteUser(context.Context, string) (*models.User, error) {
	return f.User, f.hit()
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func (f *fakeClient) Close() error { return nil }

var _ client.Client = (*fakeClient)(nil)

// ---- helpers ----

// fakeSession is a Session with fixed claims.
type fakeSession struct {
	claims *token.Claims
}

func (f *fakeSession) Login(context.Context, string, bool) (*token.Claims, error) {
	return f.claims, nil
}
func (f *fakeSession) Logout(context.Context) error             { f.claims = nil; return nil }
func (f *fakeSession) ForceLogout(context.Context, error) error { f.claims = nil; return nil }
func (f *fakeSession) CurrentClaims() *token.Claims             { return f.claims }

type env struct {
	srv     *directorytest.Server
	store   *session.Store
	durable *metadata.MemoryRepository
	http    *client.HTTPClient
	auth    AuthService
	cards   CardService
	admin   AdminService
}

// newEnv wires the services to the fake backend the way the CLI does,
// including the forced logout on 401.
func newEnv(t *testing.T) *env {
	t.Helper()
	srv := directorytest.New(t)
	durable := metadata.NewMemoryRepository()
	store := session.NewStore(durable, metadata.NewMemoryRepository(), nil, nil)

	hc, err := client.NewHTTPClient(srv.URL, store, client.WithUnauthorizedHandler(func(ctx context.Context, rejected string, err error) {
		_, _ = store.ForceLogoutIfToken(ctx, rejected, err)
	}))
	require.NoError(t, err)

	return &env{
		srv:     srv,
		store:   store,
		durable: durable,
		http:    hc,
		auth:    NewAuthService(hc, store, durable, nil),
		cards:   NewCardService(hc, store, nil),
		admin:   NewAdminService(hc, store, nil),
	}
}

func validCard() models.CardInput {
	return models.CardInput{
		Title:       "Pizza Place",
		Subtitle:    "Italian",
		Description: "Wood fired",
		Phone:       "0501234567",
		Email:       "pizza@example.com",
		Image:       models.Image{URL: "https://img.example.com/p.png", Alt: "pizza"},
		Address:     models.Address{Country: "IL", City: "Haifa", Street: "Herzl", HouseNumber: 1, Zip: 1},
	}
}

func validUser(email string, business bool) *models.User {
	return &models.User{
		Name:       models.Name{First: "Dana", Last: "Levi"},
		Phone:      "0521234567",
		Email:      email,
		Password:   "Abcdefg1!",
		Address:    models.Address{Country: "IL", City: "Haifa", Street: "Herzl", HouseNumber: 1, Zip: 1},
		IsBusiness: business,
	}
}

// login registers a user against the fake backend and logs in as them.
func (e *env) login(t *testing.T, email string, business bool) *token.Claims {
	t.Helper()
	ctx := context.Background()
	_, err := e.auth.Register(ctx, validUser(email, business))
	require.NoError(t, err)
	c, err := e.auth.Login(ctx, email, "Abcdefg1!", true)
	require.NoError(t, err)
	return c
}
