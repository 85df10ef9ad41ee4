package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ntarasov/shop_backend/internal/models"
	"github.com/ntarasov/shop_backend/internal/tokens"
)

func (r *GormRepo) AddRefreshToken(ctx context.Context, rawToken, jti string, userID uuid.UUID, expiresAt time.Time) error {
	record := models.RefreshToken{
		Token:     tokens.Sha256Hex(rawToken),
		UserID:    userID,
		JTI:       jti,
		ExpiresAt: expiresAt.Unix(),
	}
	return r.DB.WithContext(ctx).Create(&record).Error
}

func (r *GormRepo) RefreshTokenActive(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("jti = ? AND revoked = ? AND expires_at > ?", jti, false, time.Now().Unix()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, rawToken string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", tokens.Sha256Hex(rawToken)).
		Update("revoked", true).Error
}
