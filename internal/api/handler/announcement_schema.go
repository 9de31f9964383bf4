package handler

import (
	"time"

	"github.com/teamhub/announcements-api/internal/core/domain"
)

type announcementRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

type announcementResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorID    string    `json:"author_id"`
	AuthorEmail string    `json:"author_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toAnnouncementResponse(a *domain.Announcement) announcementResponse {
	return announcementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		AuthorID:    a.AuthorID,
		AuthorEmail: a.AuthorEmail,
		CreatedAt:   a.CreatedAt.UTC(),
		UpdatedAt:   a.UpdatedAt.UTC(),
	}
}

func toAnnouncementListResponse(items []domain.Announcement) []announcementResponse {
	out := make([]announcementResponse, len(items))
	for i := range items {
		out[i] = toAnnouncementResponse(&items[i])
	}
	return out
}
