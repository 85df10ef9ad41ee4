package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ntarasov/shop_backend/internal/errs"
	"github.com/ntarasov/shop_backend/internal/hash"
	"github.com/ntarasov/shop_backend/internal/logging"
	"github.com/ntarasov/shop_backend/internal/models"
	"github.com/ntarasov/shop_backend/internal/repo"
	"github.com/ntarasov/shop_backend/internal/tokens"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", errs.ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, errs.Persistence("hash password", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			l.Warn("register_failed", "reason", "email taken")
			return nil, fmt.Errorf("user already exists: %w", errs.ErrConflict)
		}
		l.Error("register_failed", "error", err)
		return nil, errs.Persistence("create user", err)
	}

	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Persistence("get user", err)
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "bad password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token must be known,
// unrevoked and unexpired, and the new pair replaces it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		l.Warn("refresh_failed", "reason", "invalid token", "error", err)
		return nil, ErrInvalidCredentials
	}

	active, err := s.Repo.RefreshTokenActive(ctx, claims.ID)
	if err != nil {
		return nil, errs.Persistence("check refresh token", err)
	}
	if !active {
		l.Warn("refresh_failed", "reason", "token revoked or expired")
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Persistence("get user", err)
	}

	if err := s.Repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, errs.Persistence("revoke refresh token", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.Repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return errs.Persistence("revoke refresh token", err)
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.tokens", "user_id", user.ID)

	accessExp := time.Now().Add(tokens.AccessTTL)
	accessToken, err := tokens.SignAccessToken(user.ID.String(), user.Role, s.JWTSecret, accessExp)
	if err != nil {
		l.Error("token_issue_failed", "error", err)
		return nil, errs.Persistence("sign access token", err)
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	refreshToken, jti, err := tokens.SignRefreshToken(user.ID.String(), s.RefreshSecret, refreshExp)
	if err != nil {
		l.Error("token_issue_failed", "error", err)
		return nil, errs.Persistence("sign refresh token", err)
	}

	if err := s.Repo.AddRefreshToken(ctx, refreshToken, jti, user.ID, refreshExp); err != nil {
		l.Error("token_issue_failed", "error", err)
		return nil, errs.Persistence("store refresh token", err)
	}

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}
