package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

func (c *HTTPClient) ListCards(ctx context.Context) ([]models.Card, error) {
	data, err := c.do(ctx, http.MethodGet, nil, "cards")
	if err != nil {
		return nil, err
	}
	return models.DecodeCards(data)
}

func (c *HTTPClient) GetCard(ctx context.Context, id string) (*models.Card, error) {
	data, err := c.do(ctx, http.MethodGet, nil, "cards", url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return models.DecodeCard(data)
}

func (c *HTTPClient) MyCards(ctx context.Context) ([]models.Card, error) {
	data, err := c.do(ctx, http.MethodGet, nil, "cards", "my-cards")
	if err != nil {
		return nil, err
	}
	return models.DecodeCards(data)
}

func (c *HTTPClient) CreateCard(ctx context.Context, in models.CardInput) (*models.Card, error) {
	data, err := c.do(ctx, http.MethodPost, in, "cards")
	if err != nil {
		return nil, err
	}
	return models.DecodeCard(data)
}

func (c *HTTPClient) UpdateCard(ctx context.Context, id string, in models.CardInput) (*models.Card, error) {
	data, err := c.do(ctx, http.MethodPut, in, "cards", url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return models.DecodeCard(data)
}

func (c *HTTPClient) DeleteCard(ctx context.Context, id string) (*models.Card, error) {
	data, err := c.do(ctx, http.MethodDelete, nil, "cards", url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return models.DecodeCard(data)
}

func (c *HTTPClient) ToggleLike(ctx context.Context, id string) (*models.Card, error) {
	data, err := c.do(ctx, http.MethodPatch, nil, "cards", url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return models.DecodeCard(data)
}
