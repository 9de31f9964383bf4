package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamhub/announcements-api/internal/core/domain"
	"github.com/teamhub/announcements-api/internal/core/ports"
)

// UserService implements the admin-only user management use cases. Role
// enforcement happens in the middleware chain; the service trusts that its
// callers are already authorized.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateRole assigns a new role to the target user. The change is effective
// on the target's next request because authorization re-fetches the live
// record instead of trusting the role embedded in old tokens.
func (s *UserService) UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	updated, err := s.repo.UpdateRole(ctx, userID, role, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("role", string(role)).Msg("user role updated")
	return updated, nil
}
