// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vipinpawar/jeopardy-app/internal/auth"
	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

// Service manages accounts. It also serves as the auth package's
// UserProvider, which is why some methods speak auth.UserInfo.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) GetByID(ctx context.Context, id string) (*auth.UserInfo, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.authView(u), nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*auth.UserInfo, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return s.authView(u), nil
}

// Create registers a FREE account. The password must already be hashed.
func (s *Service) Create(
	ctx context.Context,
	username, email, passwordHash string,
) (*auth.UserInfo, error) {
	u := &User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(username),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         RoleUser,
		Membership:   pricing.TierFree,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.authView(u), nil
}

func (s *Service) IncrementTokenVersion(ctx context.Context, userID string) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// authView is what goes into access tokens. Membership is the tier the
// user can use right now, so an expired plan is issued as FREE.
func (s *Service) authView(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Membership:   u.EffectiveTier(s.now()).String(),
		TokenVersion: u.TokenVersion,
		CreatedAt:    u.CreatedAt,
	}
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("get user: %w", core.ErrUnauthorized)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		u.Username = strings.TrimSpace(*req.Username)
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) UpdateUserRole(ctx context.Context, id, role string) (*User, error) {
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf("update role %q: %w", role, core.ErrInvalidInput)
	}

	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Role = role
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	// Outstanding tokens carry the old role.
	if err := s.repo.IncrementTokenVersion(ctx, id); err != nil {
		return nil, err
	}
	u.TokenVersion++
	return u, nil
}

// List normalizes params in place so callers can echo the page they got.
func (s *Service) List(ctx context.Context, params *ListUsersParams) ([]User, int, error) {
	params.Normalize()
	return s.repo.List(ctx, *params)
}

// Delete removes targetID on behalf of requesterID, cascading to everything
// the account owns.
func (s *Service) Delete(ctx context.Context, requesterID, targetID string) error {
	if err := s.CanDeleteUser(ctx, requesterID, targetID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, targetID)
}

// CanDeleteUser lets users delete themselves and admins delete non-admins.
func (s *Service) CanDeleteUser(ctx context.Context, requesterID, targetID string) error {
	if requesterID == "" {
		return fmt.Errorf("delete user: %w", core.ErrUnauthorized)
	}
	if requesterID == targetID {
		return nil
	}

	requester, err := s.repo.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}
	if !requester.IsAdmin() {
		return fmt.Errorf("delete user: %w", core.ErrForbidden)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.IsAdmin() {
		return fmt.Errorf("delete admin: %w", core.ErrForbidden)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ auth.UserProvider = (*Service)(nil)
