// Package authtoken signs and verifies tokens in the format of the card
// directory backend. The client only decodes tokens (see client/token);
// signing and verification serve the fake backend and the devtoken command.
package authtoken

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/bizcards/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload the backend issues on login.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"_id"`
	IsAdmin    bool   `json:"isAdmin"`
	IsBusiness bool   `json:"isBusiness"`
}

// GenerateToken signs c with HS256, issued at now. A positive validity
// adds an exp claim; the backend itself issues tokens without one.
func GenerateToken(c Claims, secretKey []byte, now time.Time, validity time.Duration) (string, error) {
	c.IssuedAt = jwt.NewNumericDate(now)
	if validity > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(validity))
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString with secretKey. Every failure matches
// common.ErrInvalidToken; expired tokens also match jwt.ErrTokenExpired.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
