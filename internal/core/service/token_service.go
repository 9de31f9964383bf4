package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/teamhub/announcements-api/internal/core/domain"
)

// TokenService signs and verifies HS256 bearer tokens carrying an identity
// snapshot. Tokens have no expiry claim: they remain valid until the signing
// secret is rotated.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

func (s *TokenService) Issue(claims domain.TokenClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    claims.ID,
		"email": claims.Email,
		"role":  string(claims.Role),
	})
	return t.SignedString(s.secret)
}

func (s *TokenService) Verify(token string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if id == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.TokenClaims{
		ID:    id,
		Email: email,
		Role:  domain.Role(role),
	}, nil
}
