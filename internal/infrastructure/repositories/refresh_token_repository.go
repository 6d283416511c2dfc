package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"

	"github.com/you/mobileauthsvc/domain"
)

// RefreshTokenRepositoryImpl implements domain.RefreshTokenRepository using
// GORM
type RefreshTokenRepositoryImpl struct {
	db    *gorm.DB
	clock clockwork.Clock
}

// DBRefreshToken represents the database model for RefreshToken
type DBRefreshToken struct {
	ID              string `gorm:"primaryKey;size:36"`
	Token           string `gorm:"uniqueIndex;size:128"`
	UserID          string `gorm:"index;size:36"`
	ExpiresAt       time.Time
	IsRevoked       bool
	ReplacedByToken string `gorm:"size:128"`
	DeviceID        string `gorm:"size:128"`
	UserAgent       string `gorm:"size:512"`
	IPAddress       string `gorm:"size:64"`
	CreatedAt       time.Time
}

// TableName returns the table name for GORM
func (DBRefreshToken) TableName() string {
	return "refresh_tokens"
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB, clock clockwork.Clock) domain.RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{db: db, clock: clock}
}

// Create implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Create(ctx context.Context, token *domain.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	dbToken := r.domainToDB(token)
	if err := r.db.WithContext(ctx).Create(dbToken).Error; err != nil {
		return err
	}
	token.CreatedAt = dbToken.CreatedAt
	return nil
}

// FindActive implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) FindActive(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var dbToken DBRefreshToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND is_revoked = ? AND expires_at > ?", token, false, r.clock.Now()).
		First(&dbToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return r.dbToDomain(&dbToken), nil
}

// Revoke implements domain.RefreshTokenRepository. The is_revoked guard in
// the WHERE clause makes rotation race-safe: with two concurrent refreshes
// of the same token only one caller gets RowsAffected == 1.
func (r *RefreshTokenRepositoryImpl) Revoke(ctx context.Context, token, replacedBy string) (bool, error) {
	updates := map[string]interface{}{"is_revoked": true}
	if replacedBy != "" {
		updates["replaced_by_token"] = replacedBy
	}
	res := r.db.WithContext(ctx).Model(&DBRefreshToken{}).
		Where("token = ? AND is_revoked = ?", token, false).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RevokeAllForUser implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) RevokeAllForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&DBRefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
}

// domainToDB converts domain token to database token
func (r *RefreshTokenRepositoryImpl) domainToDB(token *domain.RefreshToken) *DBRefreshToken {
	return &DBRefreshToken{
		ID:              token.ID,
		Token:           token.Token,
		UserID:          token.UserID,
		ExpiresAt:       token.ExpiresAt,
		IsRevoked:       token.Revoked,
		ReplacedByToken: token.ReplacedByToken,
		DeviceID:        token.DeviceID,
		UserAgent:       token.UserAgent,
		IPAddress:       token.IPAddress,
	}
}

// dbToDomain converts database token to domain token
func (r *RefreshTokenRepositoryImpl) dbToDomain(dbToken *DBRefreshToken) *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:              dbToken.ID,
		Token:           dbToken.Token,
		UserID:          dbToken.UserID,
		ExpiresAt:       dbToken.ExpiresAt,
		Revoked:         dbToken.IsRevoked,
		ReplacedByToken: dbToken.ReplacedByToken,
		DeviceID:        dbToken.DeviceID,
		UserAgent:       dbToken.UserAgent,
		IPAddress:       dbToken.IPAddress,
		CreatedAt:       dbToken.CreatedAt,
	}
}
