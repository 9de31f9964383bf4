package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamhub/announcements-api/internal/api/handler"
	"github.com/teamhub/announcements-api/internal/api/middleware"
	"github.com/teamhub/announcements-api/internal/core/domain"
	"github.com/teamhub/announcements-api/internal/core/service"
)

// In-memory repositories backing the end-to-end scenarios. They implement
// the same ports as the Mongo adapters.

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memoryUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
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

func (r *memoryUserRepo) UpdateRole(_ context.Context, id string, role domain.Role, updatedAt time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = updatedAt
	clone := *u
	return &clone, nil
}

type memoryAnnouncementRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Announcement
}

func newMemoryAnnouncementRepo() *memoryAnnouncementRepo {
	return &memoryAnnouncementRepo{items: make(map[string]*domain.Announcement)}
}

func (r *memoryAnnouncementRepo) Create(_ context.Context, a *domain.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *a
	r.items[a.ID] = &clone
	return nil
}

func (r *memoryAnnouncementRepo) FindByID(_ context.Context, id string) (*domain.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAnnouncementNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *memoryAnnouncementRepo) List(_ context.Context) ([]domain.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *memoryAnnouncementRepo) Update(_ context.Context, id, title, content string, updatedAt time.Time) (*domain.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *memoryAnnouncementRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrAnnouncementNotFound
	}
	delete(r.items, id)
	return nil
}

// newTestServer wires the real services, middleware, handlers and error
// handler over in-memory repositories, mirroring the production route table.
func newTestServer() *echo.Echo {
	log := zerolog.Nop()

	userRepo := newMemoryUserRepo()
	announcementRepo := newMemoryAnnouncementRepo()

	tokenService := service.NewTokenService("scenario-secret")
	authService := service.NewAuthService(userRepo, tokenService, log)
	announcementService := service.NewAnnouncementService(announcementRepo, nil, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	adminHandler := handler.NewAdminHandler(userService)

	authRequired := middleware.Auth(authService)
	adminOnly := middleware.RequireAdmin()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/signup", authHandler.Signup)
	apiGroup.POST("/auth/signin", authHandler.Signin)
	apiGroup.GET("/auth/user", authHandler.Me, authRequired)
	apiGroup.GET("/announcements", announcementHandler.List)
	apiGroup.POST("/announcements", announcementHandler.Create, authRequired)
	apiGroup.PUT("/announcements/:id", announcementHandler.Update, authRequired)
	apiGroup.DELETE("/announcements/:id", announcementHandler.Delete, authRequired)
	apiGroup.GET("/admin/users", adminHandler.ListUsers, authRequired, adminOnly)
	apiGroup.PUT("/admin/users/:id/role", adminHandler.UpdateRole, authRequired, adminOnly)

	return e
}

func request(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func signup(t *testing.T, e *echo.Echo, email, password, role string) (id, token string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"role":%q}`, email, password, role)
	rec := request(e, http.MethodPost, "/api/auth/signup", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("signup %s: expected 200, got %d (%s)", email, rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	user := resp["user"].(map[string]any)
	return user["id"].(string), resp["token"].(string)
}

// Mirrors the full board lifecycle: an admin and a plain user sign up, the
// admin posts, the plain user may neither edit nor delete it, the admin may
// do both.
func TestScenario_OwnershipAndAdminOverride(t *testing.T) {
	e := newTestServer()

	_, adminToken := signup(t, e, "admin@x", "Pw1!", "admin")
	_, userToken := signup(t, e, "user@x", "Pw2!", "user")

	rec := request(e, http.MethodPost, "/api/announcements", adminToken, `{"title":"Kickoff","content":"Welcome"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d", rec.Code)
	}
	announcementID := decode(t, rec)["id"].(string)

	// non-author non-admin cannot update
	rec = request(e, http.MethodPut, "/api/announcements/"+announcementID, userToken, `{"title":"Hijack","content":"nope"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("update by non-author: expected 403, got %d", rec.Code)
	}

	// author can update
	rec = request(e, http.MethodPut, "/api/announcements/"+announcementID, adminToken, `{"title":"Kickoff v2","content":"Welcome"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update by author: expected 200, got %d", rec.Code)
	}
	if decode(t, rec)["title"] != "Kickoff v2" {
		t.Fatalf("title not updated")
	}

	// non-author non-admin cannot delete
	rec = request(e, http.MethodDelete, "/api/announcements/"+announcementID, userToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("delete by non-author: expected 403, got %d", rec.Code)
	}

	// author can delete
	rec = request(e, http.MethodDelete, "/api/announcements/"+announcementID, adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete by author: expected 200, got %d", rec.Code)
	}

	// board reads stay public
	rec = request(e, http.MethodGet, "/api/announcements", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unauthenticated list: expected 200, got %d", rec.Code)
	}
}

// A role escalation takes effect on the target's next request even though
// the old token still embeds the old role: identity is re-fetched, not
// trusted from the token.
func TestScenario_RoleEscalationIsLive(t *testing.T) {
	e := newTestServer()

	_, adminToken := signup(t, e, "admin@x", "Pw1!", "admin")
	userID, userToken := signup(t, e, "user@x", "Pw2!", "user")

	// plain user is rejected from the admin surface
	rec := request(e, http.MethodGet, "/api/admin/users", userToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("pre-escalation: expected 403, got %d", rec.Code)
	}

	// admin escalates the user
	rec = request(e, http.MethodPut, "/api/admin/users/"+userID+"/role", adminToken, `{"role":"admin"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("role update: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if decode(t, rec)["user"].(map[string]any)["role"] != "admin" {
		t.Fatalf("role not updated in response")
	}

	// the same old token now clears the admin gate
	rec = request(e, http.MethodGet, "/api/admin/users", userToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("post-escalation: expected 200 with old token, got %d", rec.Code)
	}
}

func TestScenario_SignupDuplicateAndSignin(t *testing.T) {
	e := newTestServer()

	id, _ := signup(t, e, "alice@x", "Pw1!", "user")

	rec := request(e, http.MethodPost, "/api/auth/signup", "", `{"email":"alice@x","password":"other"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", rec.Code)
	}

	rec = request(e, http.MethodPost, "/api/auth/signin", "", `{"email":"alice@x","password":"Pw1!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("signin: expected 200, got %d", rec.Code)
	}
	if decode(t, rec)["user"].(map[string]any)["id"] != id {
		t.Fatalf("signin resolved a different user")
	}

	wrongPw := request(e, http.MethodPost, "/api/auth/signin", "", `{"email":"alice@x","password":"bad"}`)
	unknown := request(e, http.MethodPost, "/api/auth/signin", "", `{"email":"ghost@x","password":"bad"}`)
	if wrongPw.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPw.Code, unknown.Code)
	}
	if wrongPw.Body.String() != unknown.Body.String() {
		t.Fatalf("failure shapes must be identical: %s vs %s", wrongPw.Body.String(), unknown.Body.String())
	}
}

func TestScenario_DeletedAccountTokenRejected(t *testing.T) {
	e := newTestServer()

	// wire a repo we can reach into
	userRepo := newMemoryUserRepo()
	log := zerolog.Nop()
	tokenService := service.NewTokenService("scenario-secret")
	authService := service.NewAuthService(userRepo, tokenService, log)

	user, token, err := authService.Signup(context.Background(), "gone@x", "pw", domain.RoleUser)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	userRepo.mu.Lock()
	delete(userRepo.users, user.ID)
	userRepo.mu.Unlock()

	authHandler := handler.NewAuthHandler(authService)
	e.GET("/probe", authHandler.Me, middleware.Auth(authService))

	rec := request(e, http.MethodGet, "/probe", token, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted account, got %d", rec.Code)
	}
}
