package ports

import (
	"context"

	"github.com/teamhub/announcements-api/internal/core/domain"
)

// UserService defines the admin-only user management operations.
type UserService interface {
	// ListUsers returns all accounts ordered by creation time descending.
	ListUsers(ctx context.Context) ([]domain.User, error)
	// UpdateRole assigns a new role to the target user and refreshes its
	// updated_at timestamp.
	UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)
}
