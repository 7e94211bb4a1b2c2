package server

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aditya/slidein/internal/identity"
	"github.com/aditya/slidein/internal/server/middleware"
)

// TokenService validates identity-provider access tokens. The provider signs
// them with HS256 and a shared secret, and carries profile fields in a
// user_metadata claim.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService for the given shared secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Claims mirrors the identity provider's access-token payload.
type Claims struct {
	Email        string         `json:"email,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims
}

// ParsePrincipal validates a token and extracts the caller's ID and profile.
// This implements middleware.TokenParser.
func (s *TokenService) ParsePrincipal(tokenString string) (*middleware.Principal, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return &middleware.Principal{
		UserID:  claims.Subject,
		Profile: claims.Profile(),
	}, nil
}

// Profile assembles the identity profile from token claims. Provider
// metadata keys vary, so several spellings are read.
func (c *Claims) Profile() identity.Profile {
	return identity.Profile{
		FullName:      c.metaString("full_name", "name"),
		DisplayName:   c.metaString("display_name"),
		PreferredName: c.metaString("preferred_username", "preferred_name"),
		FirstName:     c.metaString("first_name", "given_name"),
		LastName:      c.metaString("last_name", "family_name"),
		Email:         c.Email,
	}
}

// metaString returns the first non-empty string among the metadata keys.
func (c *Claims) metaString(keys ...string) string {
	for _, key := range keys {
		if v, ok := c.UserMetadata[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
