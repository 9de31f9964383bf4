package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/teamhub/announcements-api/internal/core/domain"
	"github.com/teamhub/announcements-api/internal/core/security"
)

// EnsureAdminUser seeds a bootstrap admin account when credentials are
// configured and no account with that email exists yet. A no-op otherwise.
func EnsureAdminUser(ctx context.Context, repo *UserRepository, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repo.Create(ctx, admin); err != nil {
		// Lost the race against a concurrent signup with the same email.
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return err
	}
	return nil
}
