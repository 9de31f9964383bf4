package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamhub/announcements-api/internal/core/domain"
	"github.com/teamhub/announcements-api/internal/core/ports"
)

type stubAnnouncementRepo struct {
	items map[string]*domain.Announcement
}

func newStubAnnouncementRepo() *stubAnnouncementRepo {
	return &stubAnnouncementRepo{items: make(map[string]*domain.Announcement)}
}

func (r *stubAnnouncementRepo) Create(_ context.Context, a *domain.Announcement) error {
	clone := *a
	r.items[a.ID] = &clone
	return nil
}

func (r *stubAnnouncementRepo) FindByID(_ context.Context, id string) (*domain.Announcement, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAnnouncementNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAnnouncementRepo) List(_ context.Context) ([]domain.Announcement, error) {
	out := make([]domain.Announcement, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, *a)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubAnnouncementRepo) Update(_ context.Context, id, title, content string, updatedAt time.Time) (*domain.Announcement, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAnnouncementNotFound
	}
	a.Title = title
	a.Content = content
	a.UpdatedAt = updatedAt
	clone := *a
	return &clone, nil
}

func (r *stubAnnouncementRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrAnnouncementNotFound
	}
	delete(r.items, id)
	return nil
}

// countingCache records cache traffic so tests can assert invalidation.
type countingCache struct {
	stored      []domain.Announcement
	hits        int
	invalidated int
}

func (c *countingCache) Get(_ context.Context) ([]domain.Announcement, error) {
	if c.stored == nil {
		return nil, nil
	}
	c.hits++
	return c.stored, nil
}

func (c *countingCache) Put(_ context.Context, items []domain.Announcement) error {
	c.stored = items
	return nil
}

func (c *countingCache) Invalidate(_ context.Context) error {
	c.stored = nil
	c.invalidated++
	return nil
}

func newTestAnnouncementService(repo ports.AnnouncementRepository, cache ListCache) *AnnouncementService {
	return NewAnnouncementService(repo, cache, zerolog.Nop())
}

func TestAnnouncementService_Create_CopiesAuthorSnapshot(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newTestAnnouncementService(repo, nil)

	created, err := svc.Create(context.Background(), ports.CreateAnnouncementInput{
		Title:       "Welcome",
		Content:     "First post",
		AuthorID:    "u1",
		AuthorEmail: "admin@x",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.AuthorID != "u1" || created.AuthorEmail != "admin@x" {
		t.Fatalf("author snapshot not copied: %+v", created)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected created_at == updated_at on creation")
	}
}

func TestAnnouncementService_List_NewestFirst(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newTestAnnouncementService(repo, nil)

	base := time.Now().UTC()
	for i, id := range []string{"a", "b", "c"} {
		repo.items[id] = &domain.Announcement{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != "c" || items[2].ID != "a" {
		t.Fatalf("expected newest first, got %s..%s", items[0].ID, items[2].ID)
	}
}

func TestAnnouncementService_List_UsesCache(t *testing.T) {
	repo := newStubAnnouncementRepo()
	cache := &countingCache{}
	svc := newTestAnnouncementService(repo, cache)

	repo.items["a"] = &domain.Announcement{ID: "a", CreatedAt: time.Now().UTC()}

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("first List: %v", err)
	}
	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("second List: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected second call to hit the cache, hits=%d", cache.hits)
	}
}

func TestAnnouncementService_MutationInvalidatesCache(t *testing.T) {
	repo := newStubAnnouncementRepo()
	cache := &countingCache{}
	svc := newTestAnnouncementService(repo, cache)

	created, err := svc.Create(context.Background(), ports.CreateAnnouncementInput{
		Title: "t", Content: "c", AuthorID: "u1", AuthorEmail: "a@x",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Update(context.Background(), ports.UpdateAnnouncementInput{
		ID: created.ID, Title: "t2", Content: "c2", ActorID: "u1", ActorRole: domain.RoleUser,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := svc.Delete(context.Background(), ports.DeleteAnnouncementInput{
		ID: created.ID, ActorID: "u1", ActorRole: domain.RoleUser,
	}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if cache.invalidated != 3 {
		t.Fatalf("expected 3 invalidations, got %d", cache.invalidated)
	}
}

func TestAnnouncementService_Update_OwnershipMatrix(t *testing.T) {
	tests := []struct {
		name      string
		actorID   string
		actorRole domain.Role
		wantErr   error
	}{
		{name: "author may update", actorID: "author-1", actorRole: domain.RoleUser},
		{name: "admin may update", actorID: "someone-else", actorRole: domain.RoleAdmin},
		{name: "other user is forbidden", actorID: "someone-else", actorRole: domain.RoleUser, wantErr: domain.ErrForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubAnnouncementRepo()
			repo.items["z"] = &domain.Announcement{ID: "z", Title: "old", AuthorID: "author-1", CreatedAt: time.Now().UTC()}
			svc := newTestAnnouncementService(repo, nil)

			updated, err := svc.Update(context.Background(), ports.UpdateAnnouncementInput{
				ID: "z", Title: "new", Content: "body", ActorID: tc.actorID, ActorRole: tc.actorRole,
			})
			if tc.wantErr != nil {
				if err != tc.wantErr {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if repo.items["z"].Title != "old" {
					t.Fatalf("forbidden update must not mutate the record")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.Title != "new" {
				t.Fatalf("title not updated: %+v", updated)
			}
		})
	}
}

func TestAnnouncementService_Delete_OwnershipMatrix(t *testing.T) {
	tests := []struct {
		name      string
		actorID   string
		actorRole domain.Role
		wantErr   error
	}{
		{name: "author may delete", actorID: "author-1", actorRole: domain.RoleUser},
		{name: "admin may delete", actorID: "someone-else", actorRole: domain.RoleAdmin},
		{name: "other user is forbidden", actorID: "someone-else", actorRole: domain.RoleUser, wantErr: domain.ErrForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubAnnouncementRepo()
			repo.items["z"] = &domain.Announcement{ID: "z", AuthorID: "author-1", CreatedAt: time.Now().UTC()}
			svc := newTestAnnouncementService(repo, nil)

			err := svc.Delete(context.Background(), ports.DeleteAnnouncementInput{
				ID: "z", ActorID: tc.actorID, ActorRole: tc.actorRole,
			})
			if tc.wantErr != nil {
				if err != tc.wantErr {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if _, ok := repo.items["z"]; !ok {
					t.Fatalf("forbidden delete must not remove the record")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := repo.items["z"]; ok {
				t.Fatalf("record still present after delete")
			}
		})
	}
}

func TestAnnouncementService_UpdateDelete_NotFound(t *testing.T) {
	svc := newTestAnnouncementService(newStubAnnouncementRepo(), nil)

	if _, err := svc.Update(context.Background(), ports.UpdateAnnouncementInput{
		ID: "missing", Title: "t", Content: "c", ActorID: "u1", ActorRole: domain.RoleAdmin,
	}); err != domain.ErrAnnouncementNotFound {
		t.Fatalf("update: expected ErrAnnouncementNotFound, got %v", err)
	}

	if err := svc.Delete(context.Background(), ports.DeleteAnnouncementInput{
		ID: "missing", ActorID: "u1", ActorRole: domain.RoleAdmin,
	}); err != domain.ErrAnnouncementNotFound {
		t.Fatalf("delete: expected ErrAnnouncementNotFound, got %v", err)
	}
}
