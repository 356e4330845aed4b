package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const verificationTokenTTL = 48 * time.Hour

// EmailTokenCodec signs and parses the short-lived tokens embedded in
// verification links.
type EmailTokenCodec struct {
	secret []byte
}

func NewEmailTokenCodec(secret string) *EmailTokenCodec {
	return &EmailTokenCodec{secret: []byte(secret)}
}

func (c *EmailTokenCodec) Sign(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(verificationTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign verification token: %w", err)
	}
	return signed, nil
}

func (c *EmailTokenCodec) Parse(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}
