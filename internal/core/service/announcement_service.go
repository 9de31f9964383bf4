package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamhub/announcements-api/internal/core/domain"
	"github.com/teamhub/announcements-api/internal/core/ports"
)

// ListCache abstracts the cache for the public announcements listing
// (Redis). A (nil, nil) Get result is a miss. Cache failures are never
// fatal: the service falls back to the repository.
type ListCache interface {
	Get(ctx context.Context) ([]domain.Announcement, error)
	Put(ctx context.Context, items []domain.Announcement) error
	Invalidate(ctx context.Context) error
}

// AnnouncementService implements the board use cases.
type AnnouncementService struct {
	repo   ports.AnnouncementRepository
	cache  ListCache
	logger zerolog.Logger
}

// NewAnnouncementService returns an AnnouncementService. cache may be nil to
// disable listing cache entirely (used in tests).
func NewAnnouncementService(repo ports.AnnouncementRepository, cache ListCache, logger zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, cache: cache, logger: logger}
}

// List returns all announcements newest first. Reads are unauthenticated.
func (s *AnnouncementService) List(ctx context.Context) ([]domain.Announcement, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("announcement cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, items); err != nil {
			s.logger.Warn().Err(err).Msg("announcement cache write failed")
		}
	}
	return items, nil
}

// Create inserts a new announcement authored by the resolved current user.
// The author email stored here is a snapshot and is not refreshed if the
// account's email changes later.
func (s *AnnouncementService) Create(ctx context.Context, input ports.CreateAnnouncementInput) (*domain.Announcement, error) {
	now := time.Now().UTC()
	a := &domain.Announcement{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Content:     input.Content,
		AuthorID:    input.AuthorID,
		AuthorEmail: input.AuthorEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error().Err(err).Msg("failed to create announcement")
		return nil, err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Str("announcement_id", a.ID).Str("author_id", a.AuthorID).Msg("announcement created")
	return a, nil
}

// Update replaces title and content. Permitted only for the author or an
// admin; existence is checked before ownership so a missing id is reported
// as not found rather than forbidden.
func (s *AnnouncementService) Update(ctx context.Context, input ports.UpdateAnnouncementInput) (*domain.Announcement, error) {
	existing, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if !existing.CanBeMutatedBy(input.ActorID, input.ActorRole) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.repo.Update(ctx, input.ID, input.Title, input.Content, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Str("announcement_id", input.ID).Str("actor_id", input.ActorID).Msg("announcement updated")
	return updated, nil
}

// Delete removes an announcement, subject to the same ownership-or-admin
// rule as Update.
func (s *AnnouncementService) Delete(ctx context.Context, input ports.DeleteAnnouncementInput) error {
	existing, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return err
	}

	if !existing.CanBeMutatedBy(input.ActorID, input.ActorRole) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, input.ID); err != nil {
		if errors.Is(err, domain.ErrAnnouncementNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("announcement_id", input.ID).Msg("failed to delete announcement")
		return err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Str("announcement_id", input.ID).Str("actor_id", input.ActorID).Msg("announcement deleted")
	return nil
}

func (s *AnnouncementService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("announcement cache invalidation failed")
	}
}
