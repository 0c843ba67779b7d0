package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultUserImageURL = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"
	DefaultUserImageAlt = "User Profile Image"
)

type Name struct {
	First  string `json:"first" validate:"required,min=2,max=256"`
	Middle string `json:"middle" validate:"omitempty,min=2,max=256"`
	Last   string `json:"last" validate:"required,min=2,max=256"`
}

// Full joins the non-empty parts with single spaces.
func (n Name) Full() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.First, n.Middle, n.Last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

type User struct {
	ID         string    `json:"_id,omitempty"`
	Name       Name      `json:"name"`
	Phone      string    `json:"phone" validate:"required,min=9,max=11"`
	Email      string    `json:"email" validate:"required,min=5,email"`
	Password   string    `json:"password,omitempty" validate:"omitempty,password"`
	Image      Image     `json:"image"`
	Address    Address   `json:"address"`
	IsAdmin    bool      `json:"isAdmin"`
	IsBusiness bool      `json:"isBusiness"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
}

// ProfileUpdate is the body of PUT /users/:id.
type ProfileUpdate struct {
	Name    Name    `json:"name"`
	Phone   string  `json:"phone" validate:"required,min=9,max=11"`
	Image   Image   `json:"image"`
	Address Address `json:"address"`
}

func (u *User) Profile() ProfileUpdate {
	return ProfileUpdate{Name: u.Name, Phone: u.Phone, Image: u.Image, Address: u.Address}
}

// NormalizeRegistration fills the defaults the backend expects on sign-up:
// a placeholder image, trimmed strings and no admin flag.
func NormalizeRegistration(u *User) {
	u.Name.First = strings.TrimSpace(u.Name.First)
	u.Name.Middle = strings.TrimSpace(u.Name.Middle)
	u.Name.Last = strings.TrimSpace(u.Name.Last)
	u.Phone = strings.TrimSpace(u.Phone)
	u.Email = strings.TrimSpace(u.Email)
	u.Address.State = strings.TrimSpace(u.Address.State)
	u.Address.Country = strings.TrimSpace(u.Address.Country)
	u.Address.City = strings.TrimSpace(u.Address.City)
	u.Address.Street = strings.TrimSpace(u.Address.Street)

	if strings.TrimSpace(u.Image.URL) == "" {
		u.Image.URL = DefaultUserImageURL
	}
	if strings.TrimSpace(u.Image.Alt) == "" {
		u.Image.Alt = DefaultUserImageAlt
	}

	u.ID = ""
	u.IsAdmin = false
	u.CreatedAt = time.Time{}
}

func DecodeUser(data []byte) (*User, error) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("%w: user: %v", ErrMalformedPayload, err)
	}
	if err := u.check(); err != nil {
		return nil, err
	}
	return &u, nil
}

func DecodeUsers(data []byte) ([]User, error) {
	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: users: %v", ErrMalformedPayload, err)
	}
	if users == nil {
		users = []User{}
	}
	for i := range users {
		if err := users[i].check(); err != nil {
			return nil, fmt.Errorf("user #%d: %w", i, err)
		}
	}
	return users, nil
}

// check also drops any password echoed back by the server.
func (u *User) check() error {
	if u.ID == "" {
		return fmt.Errorf("%w: user without _id", ErrMalformedPayload)
	}
	u.Password = ""
	return nil
}
