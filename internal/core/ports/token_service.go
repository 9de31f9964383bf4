package ports

import "github.com/teamhub/announcements-api/internal/core/domain"

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	// Issue produces a compact signed token embedding the claims. Tokens
	// carry no expiry; rotating the signing secret is the only invalidation
	// mechanism.
	Issue(claims domain.TokenClaims) (string, error)
	// Verify checks the signature and structure of a token and returns its
	// claims, or domain.ErrInvalidToken for anything malformed, tampered
	// with, or signed with the wrong key.
	Verify(token string) (*domain.TokenClaims, error)
}
