package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Image struct {
	URL string `json:"url" validate:"required,min=14"`
	Alt string `json:"alt" validate:"required,min=2,max=256"`
}

type Address struct {
	State       string `json:"state,omitempty" validate:"omitempty,min=2,max=256"`
	Country     string `json:"country" validate:"required,min=2,max=256"`
	City        string `json:"city" validate:"required,min=2,max=256"`
	Street      string `json:"street" validate:"required,min=2,max=256"`
	HouseNumber int    `json:"houseNumber" validate:"gte=1"`
	Zip         int    `json:"zip" validate:"gte=1"`
}

// Card is a business card as served by the backend. ID, OwnerUserID,
// LikedBy, BizNumber and CreatedAt are assigned server side.
type Card struct {
	ID          string    `json:"_id,omitempty"`
	Title       string    `json:"title" validate:"required,min=2,max=256"`
	Subtitle    string    `json:"subtitle" validate:"required,min=2,max=256"`
	Description string    `json:"description" validate:"required,min=2,max=1024"`
	Phone       string    `json:"phone" validate:"required,min=9,max=11"`
	Email       string    `json:"email" validate:"required,min=5,email"`
	Web         string    `json:"web,omitempty" validate:"omitempty,min=14,url"`
	Image       Image     `json:"image"`
	Address     Address   `json:"address"`
	BizNumber   int       `json:"bizNumber,omitempty"`
	OwnerUserID string    `json:"user_id,omitempty"`
	LikedBy     []string  `json:"likes"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// CardInput is the writable part of a card, sent on create and update.
type CardInput struct {
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle"`
	Description string  `json:"description"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Web         string  `json:"web,omitempty"`
	Image       Image   `json:"image"`
	Address     Address `json:"address"`
}

// Input returns the writable fields of c.
func (c *Card) Input() CardInput {
	return CardInput{
		Title:       c.Title,
		Subtitle:    c.Subtitle,
		Description: c.Description,
		Phone:       c.Phone,
		Email:       c.Email,
		Web:         c.Web,
		Image:       c.Image,
		Address:     c.Address,
	}
}

// DecodeCard parses a card received from the backend. A card without an id
// is rejected; a missing likes list becomes empty.
func DecodeCard(data []byte) (*Card, error) {
	var c Card
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: card: %v", ErrMalformedPayload, err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func DecodeCards(data []byte) ([]Card, error) {
	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("%w: cards: %v", ErrMalformedPayload, err)
	}
	if cards == nil {
		cards = []Card{}
	}
	for i := range cards {
		if err := cards[i].check(); err != nil {
			return nil, fmt.Errorf("card #%d: %w", i, err)
		}
	}
	return cards, nil
}

func (c *Card) check() error {
	if c.ID == "" {
		return fmt.Errorf("%w: card without _id", ErrMalformedPayload)
	}
	if c.LikedBy == nil {
		c.LikedBy = []string{}
	}
	return nil
}
