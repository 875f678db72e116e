// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/mailer"
	"github.com/vipinpawar/jeopardy-app/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenReuse         = errors.New("token reuse detected")
	ErrEmailExists        = errors.New("email already exists")
	ErrCaptchaFailed      = errors.New("captcha verification failed")
)

type UserInfo struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	Membership   string
	TokenVersion int
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		username, email, passwordHash string,
	) (*UserInfo, error)
	IncrementTokenVersion(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type ServiceConfig struct {
	Repo          Repository
	JWT           *JWTManager
	UserProvider  UserProvider
	Captcha       CaptchaVerifier
	Mailer        Mailer
	Versions      VersionCache
	PublicBaseURL string
	Logger        *slog.Logger
}

type Service struct {
	repo          Repository
	jwt           *JWTManager
	userProvider  UserProvider
	captcha       CaptchaVerifier
	mailer        Mailer
	versions      VersionCache
	publicBaseURL string
	logger        *slog.Logger
}

func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		repo:          cfg.Repo,
		jwt:           cfg.JWT,
		userProvider:  cfg.UserProvider,
		captcha:       cfg.Captcha,
		mailer:        cfg.Mailer,
		versions:      cfg.Versions,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // same cost as a wrong password
			_, _ = core.CheckPassword(req.Password, "")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	check, err := core.CheckPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !check.Valid {
		return nil, ErrInvalidCredentials
	}

	if check.Rehash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, check.Rehash); err != nil {
			s.logger.WarnContext(ctx, "password rehash not saved", "user_id", user.ID, "error", err)
		}
	}

	return s.createAuthResponse(ctx, user, userAgent, ipAddress, "", nil)
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, req.CaptchaToken, ipAddress); err != nil {
			if errors.Is(err, core.ErrInvalidInput) {
				return nil, ErrCaptchaFailed
			}
			return nil, fmt.Errorf("verify captcha: %w", err)
		}
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, req.Username, req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.createAuthResponse(ctx, user, userAgent, ipAddress, "", nil)
}

func (s *Service) Refresh(
	ctx context.Context,
	refreshToken, userAgent, ipAddress string,
) (*AuthResponse, error) {
	tokenHash := core.HashToken(refreshToken)

	storedToken, err := s.repo.FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	if err := storedToken.Check(time.Now()); err != nil {
		if errors.Is(err, ErrTokenReuse) {
			s.burnFamily(ctx, storedToken.FamilyID)
		}
		return nil, err
	}

	user, err := s.userProvider.GetByID(ctx, storedToken.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return s.createAuthResponse(
		ctx,
		user,
		userAgent,
		ipAddress,
		storedToken.FamilyID,
		&storedToken.ID,
	)
}

func (s *Service) Logout(
	ctx context.Context,
	refreshToken, userID string,
) error {
	tokenHash := core.HashToken(refreshToken)

	storedToken, err := s.repo.FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find token: %w", err)
	}

	if storedToken.UserID != userID {
		return fmt.Errorf("logout: %w", core.ErrForbidden)
	}

	if err := s.repo.Revoke(ctx, storedToken.ID); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	if err := s.repo.RevokeUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke all tokens: %w", err)
	}

	if err := s.userProvider.IncrementTokenVersion(ctx, userID); err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}
	s.forgetVersion(ctx, userID)

	return nil
}

func (s *Service) GetActiveSessions(
	ctx context.Context,
	userID string,
) ([]SessionInfo, error) {
	tokens, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}

	sessions := make([]SessionInfo, 0, len(tokens))
	for i := range tokens {
		sessions = append(sessions, tokens[i].session())
	}

	return sessions, nil
}

func (s *Service) RevokeSession(
	ctx context.Context,
	userID, sessionID string,
) error {
	token, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("find session: %w", err)
	}

	if token.UserID != userID {
		return fmt.Errorf("revoke session: %w", core.ErrForbidden)
	}

	if err := s.repo.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID, currentPassword, newPassword string,
) error {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	check, err := core.CheckPassword(currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !check.Valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.LogoutAll(ctx, userID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}

	return nil
}

// ForgotPassword e-mails a reset link. Unknown addresses succeed silently so
// the endpoint cannot be used to probe for accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	token, err := s.jwt.CreateResetToken(user.ID, user.TokenVersion)
	if err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}

	link := s.publicBaseURL + "/auth/reset-password?token=" + url.QueryEscape(token)

	msg, err := mailer.PasswordReset(user.Email, link, int(s.jwt.ResetTokenTTL().Minutes()))
	if err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, version, err := s.jwt.VerifyResetToken(token)
	if err != nil {
		return err
	}

	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("reset password: %w", core.ErrTokenInvalid)
		}
		return fmt.Errorf("get user: %w", err)
	}

	if version != user.TokenVersion {
		return fmt.Errorf("reset password: %w", core.ErrTokenRevoked)
	}

	newHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return s.LogoutAll(ctx, userID)
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) createAuthResponse(
	ctx context.Context,
	user *UserInfo,
	userAgent, ipAddress, familyID string,
	oldTokenID *string,
) (*AuthResponse, error) {
	accessToken, err := s.jwt.CreateAccessToken(middleware.AccessTokenClaims{
		UserID:       user.ID,
		Role:         user.Role,
		Membership:   user.Membership,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshData, err := s.jwt.NewRefreshToken(familyID)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	newTokenID := uuid.New().String()

	refreshTokenEntity := &RefreshToken{
		ID:        newTokenID,
		UserID:    user.ID,
		TokenHash: refreshData.Hash,
		FamilyID:  refreshData.FamilyID,
		ExpiresAt: refreshData.ExpiresAt,
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}

	if oldTokenID != nil {
		err = s.repo.Rotate(ctx, *oldTokenID, refreshTokenEntity)
		if errors.Is(err, ErrTokenReuse) {
			s.burnFamily(ctx, refreshTokenEntity.FamilyID)
			return nil, ErrTokenReuse
		}
	} else {
		err = s.repo.Create(ctx, refreshTokenEntity)
	}
	if err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	ttl := s.jwt.AccessTokenTTL()

	return &AuthResponse{
		User: toUserResponse(user),
		Tokens: TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshData.Token,
			TokenType:    "Bearer",
			ExpiresIn:    int(ttl / time.Second),
			ExpiresAt:    time.Now().Add(ttl),
		},
	}, nil
}

// burnFamily revokes every link descending from a login whose chain was
// replayed. Failure only leaves the family to expire naturally.
func (s *Service) burnFamily(ctx context.Context, familyID string) {
	if err := s.repo.RevokeFamily(ctx, familyID); err != nil {
		s.logger.ErrorContext(ctx, "revoke token family", "family_id", familyID, "error", err)
		return
	}
	s.logger.WarnContext(ctx, "refresh token reuse, family revoked", "family_id", familyID)
}

// PruneSessions deletes refresh tokens that expired more than retention ago.
func (s *Service) PruneSessions(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.DeleteExpired(ctx, time.Now().Add(-retention))
}

func toUserResponse(user *UserInfo) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role,
		Membership: user.Membership,
		CreatedAt:  user.CreatedAt,
	}
}
