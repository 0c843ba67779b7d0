package client

import (
	"context"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

// TokenSource yields the bearer token for the next request, "" for none.
type TokenSource interface {
	Token() string
}

type CardClient interface {
	ListCards(ctx context.Context) ([]models.Card, error)
	GetCard(ctx context.Context, id string) (*models.Card, error)
	MyCards(ctx context.Context) ([]models.Card, error)
	CreateCard(ctx context.Context, in models.CardInput) (*models.Card, error)
	UpdateCard(ctx context.Context, id string, in models.CardInput) (*models.Card, error)
	DeleteCard(ctx context.Context, id string) (*models.Card, error)
	// ToggleLike adds or removes the caller from the card's likes and
	// returns the updated card.
	ToggleLike(ctx context.Context, id string) (*models.Card, error)
}

type UserClient interface {
	Register(ctx context.Context, u *models.User) (*models.User, error)
	// Login returns the raw token issued by the backend.
	Login(ctx context.Context, email, password string) (string, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, p models.ProfileUpdate) (*models.User, error)
	// ToggleBusiness flips the isBusiness flag of the user.
	ToggleBusiness(ctx context.Context, id string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (*models.User, error)
}

type Client interface {
	CardClient
	UserClient
	Ping(ctx context.Context) error
	Close() error
}

var _ Client = (*HTTPClient)(nil)
