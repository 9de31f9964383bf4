package ports

import (
	"context"

	"github.com/teamhub/announcements-api/internal/core/domain"
)

// CreateAnnouncementInput carries the data needed to create an announcement.
// Author fields are copied from the resolved current user, never from the
// request body.
type CreateAnnouncementInput struct {
	Title       string
	Content     string
	AuthorID    string
	AuthorEmail string
}

// UpdateAnnouncementInput carries an announcement mutation plus the identity
// of the acting user for the ownership-or-admin check.
type UpdateAnnouncementInput struct {
	ID        string
	Title     string
	Content   string
	ActorID   string
	ActorRole domain.Role
}

// DeleteAnnouncementInput identifies the announcement to delete and the
// acting user.
type DeleteAnnouncementInput struct {
	ID        string
	ActorID   string
	ActorRole domain.Role
}

// AnnouncementService defines use-case operations for announcements.
type AnnouncementService interface {
	// List returns all announcements, newest first. No authentication is
	// required to read the board.
	List(ctx context.Context) ([]domain.Announcement, error)
	Create(ctx context.Context, input CreateAnnouncementInput) (*domain.Announcement, error)
	Update(ctx context.Context, input UpdateAnnouncementInput) (*domain.Announcement, error)
	Delete(ctx context.Context, input DeleteAnnouncementInput) error
}
