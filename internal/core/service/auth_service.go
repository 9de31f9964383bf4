package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamhub/announcements-api/internal/core/domain"
	"github.com/teamhub/announcements-api/internal/core/ports"
	"github.com/teamhub/announcements-api/internal/core/security"
)

// AuthService implements signup, signin and bearer-token resolution.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Signup creates a new account. The email existence check and the insert are
// two independent store calls; the unique index on email closes the race, and
// a duplicate-key failure surfaces as the same ErrUserExists.
func (s *AuthService) Signup(ctx context.Context, email, password string, role domain.Role) (*domain.User, string, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if !role.IsValid() {
		return nil, "", domain.ErrInvalidRole
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user signed up")
	return user, token, nil
}

// Signin authenticates by email and password. Unknown email and wrong
// password both yield ErrInvalidCredentials so callers cannot enumerate
// registered addresses.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user signed in")
	return user, token, nil
}

// CurrentUser verifies the token and re-fetches the user by id, so the
// caller always sees the live role and a deleted account is rejected even
// when its old token still carries a valid signature.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	return s.tokens.Issue(domain.TokenClaims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
}
