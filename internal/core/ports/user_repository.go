package ports

import (
	"context"
	"time"

	"github.com/teamhub/announcements-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns all users ordered by creation time descending.
	List(ctx context.Context) ([]domain.User, error)
	// UpdateRole sets the role and refreshes updated_at, returning the
	// updated user.
	UpdateRole(ctx context.Context, id string, role domain.Role, updatedAt time.Time) (*domain.User, error)
}
