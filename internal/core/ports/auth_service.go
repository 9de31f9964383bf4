package ports

import (
	"context"

	"github.com/teamhub/announcements-api/internal/core/domain"
)

// AuthService implements signup, signin and bearer-token resolution.
type AuthService interface {
	// Signup creates an account and returns it along with a freshly issued
	// token. Duplicate emails yield domain.ErrUserExists.
	Signup(ctx context.Context, email, password string, role domain.Role) (*domain.User, string, error)
	// Signin authenticates by email and password. Unknown email and wrong
	// password are indistinguishable: both yield domain.ErrInvalidCredentials.
	Signin(ctx context.Context, email, password string) (*domain.User, string, error)
	// CurrentUser verifies a bearer token and re-fetches the live user
	// record, so role changes take effect immediately and deleted accounts
	// are rejected. Any failure yields domain.ErrInvalidToken.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
