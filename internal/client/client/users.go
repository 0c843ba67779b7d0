package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Register(ctx context.Context, u *models.User) (*models.User, error) {
	data, err := c.do(ctx, http.MethodPost, u, "users")
	if err != nil {
		return nil, err
	}
	return models.DecodeUser(data)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	data, err := c.do(ctx, http.MethodPost, credentials{Email: email, Password: password}, "users", "login")
	if err != nil {
		return "", err
	}
	return decodeToken(data)
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	data, err := c.do(ctx, http.MethodGet, nil, "users", url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return models.DecodeUser(data)
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	data, err := c.do(ctx, http.MethodGet, nil, "users")
	if err != nil {
		return nil, err
	}
	return models.DecodeUsers(data)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, p models.ProfileUpdate) (*models.User, error) {
	data, err := c.do(ctx, http.MethodPut, p, "users", url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return models.DecodeUser(data)
}

func (c *HTTPClient) ToggleBusiness(ctx context.Context, id string) (*models.User, error) {
	data, err := c.do(ctx, http.MethodPatch, nil, "users", url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return models.DecodeUser(data)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	data, err := c.do(ctx, http.MethodDelete, nil, "users", url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return models.DecodeUser(data)
}
