package ports

import (
	"context"
	"time"

	"github.com/teamhub/announcements-api/internal/core/domain"
)

// AnnouncementRepository defines persistence operations for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) error
	FindByID(ctx context.Context, id string) (*domain.Announcement, error)
	// List returns all announcements ordered by creation time descending.
	List(ctx context.Context) ([]domain.Announcement, error)
	// Update replaces title and content and refreshes updated_at, returning
	// the updated announcement.
	Update(ctx context.Context, id, title, content string, updatedAt time.Time) (*domain.Announcement, error)
	Delete(ctx context.Context, id string) error
}
