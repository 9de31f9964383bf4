package domain

import (
	"errors"
	"time"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")
var ErrForbidden = errors.New("access forbidden")

// Announcement is a board post. AuthorEmail is a denormalized snapshot taken
// at creation time and is intentionally not kept in sync with later changes
// to the author's account.
type Announcement struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Content     string    `json:"content" bson:"content"`
	AuthorID    string    `json:"author_id" bson:"author_id"`
	AuthorEmail string    `json:"author_email" bson:"author_email"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// CanBeMutatedBy reports whether actor may update or delete the announcement:
// only its author or an admin.
func (a *Announcement) CanBeMutatedBy(actorID string, actorRole Role) bool {
	return a.AuthorID == actorID || actorRole == RoleAdmin
}
