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

// VerificationCodeRepositoryImpl implements domain.VerificationCodeRepository
// using GORM
type VerificationCodeRepositoryImpl struct {
	db    *gorm.DB
	clock clockwork.Clock
}

// DBVerificationCode represents the database model for VerificationCode
type DBVerificationCode struct {
	ID         string `gorm:"primaryKey;size:36"`
	Code       string `gorm:"index;size:8"`
	Identifier string `gorm:"index;size:255"`
	Purpose    string `gorm:"index;size:20"`
	ExpiresAt  time.Time
	IsUsed     bool
	UserID     string `gorm:"size:36"`
	DeviceID   string `gorm:"size:128"`
	IPAddress  string `gorm:"size:64"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBVerificationCode) TableName() string {
	return "verification_codes"
}

// NewVerificationCodeRepository creates a new verification code repository
func NewVerificationCodeRepository(db *gorm.DB, clock clockwork.Clock) domain.VerificationCodeRepository {
	return &VerificationCodeRepositoryImpl{db: db, clock: clock}
}

// Create implements domain.VerificationCodeRepository
func (r *VerificationCodeRepositoryImpl) Create(ctx context.Context, code *domain.VerificationCode) error {
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	dbCode := r.domainToDB(code)
	if err := r.db.WithContext(ctx).Create(dbCode).Error; err != nil {
		return err
	}
	code.CreatedAt = dbCode.CreatedAt
	return nil
}

// DeleteUnconsumed implements domain.VerificationCodeRepository. Issuing a
// new code invalidates all prior unconsumed codes for the pair so a stale
// code can never be accepted.
func (r *VerificationCodeRepositoryImpl) DeleteUnconsumed(ctx context.Context, identifier string, purpose domain.CodePurpose) error {
	return r.db.WithContext(ctx).
		Where("identifier = ? AND purpose = ? AND is_used = ?", identifier, string(purpose), false).
		Delete(&DBVerificationCode{}).Error
}

// Consume implements domain.VerificationCodeRepository. The candidate row
// is selected first and then updated by its id; the conditional update is
// the serialization point, so under concurrent attempts on the same row
// exactly one caller sees RowsAffected == 1. Updating by id also guarantees
// the returned record is the row that was consumed, not an older consumed
// row that happens to carry the same short code value.
func (r *VerificationCodeRepositoryImpl) Consume(ctx context.Context, identifier, code string, purpose domain.CodePurpose) (*domain.VerificationCode, error) {
	now := r.clock.Now()

	var dbCode DBVerificationCode
	err := r.db.WithContext(ctx).
		Where("identifier = ? AND code = ? AND purpose = ? AND is_used = ? AND expires_at > ?",
			identifier, code, string(purpose), false, now).
		Order("created_at DESC").
		First(&dbCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeInvalid
		}
		return nil, err
	}

	res := r.db.WithContext(ctx).Model(&DBVerificationCode{}).
		Where("id = ? AND is_used = ?", dbCode.ID, false).
		Update("is_used", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrCodeInvalid
	}

	dbCode.IsUsed = true
	return r.dbToDomain(&dbCode), nil
}

// FindVerified implements domain.VerificationCodeRepository
func (r *VerificationCodeRepositoryImpl) FindVerified(ctx context.Context, identifier string, purpose domain.CodePurpose) (*domain.VerificationCode, error) {
	var dbCode DBVerificationCode
	err := r.db.WithContext(ctx).
		Where("identifier = ? AND purpose = ? AND is_used = ? AND expires_at > ?",
			identifier, string(purpose), true, r.clock.Now()).
		Order("created_at DESC").
		First(&dbCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotVerified
		}
		return nil, err
	}
	return r.dbToDomain(&dbCode), nil
}

// domainToDB converts domain code to database code
func (r *VerificationCodeRepositoryImpl) domainToDB(code *domain.VerificationCode) *DBVerificationCode {
	return &DBVerificationCode{
		ID:         code.ID,
		Code:       code.Code,
		Identifier: code.Identifier,
		Purpose:    string(code.Purpose),
		ExpiresAt:  code.ExpiresAt,
		IsUsed:     code.Used,
		UserID:     code.UserID,
		DeviceID:   code.DeviceID,
		IPAddress:  code.IPAddress,
	}
}

// dbToDomain converts database code to domain code
func (r *VerificationCodeRepositoryImpl) dbToDomain(dbCode *DBVerificationCode) *domain.VerificationCode {
	return &domain.VerificationCode{
		ID:         dbCode.ID,
		Code:       dbCode.Code,
		Identifier: dbCode.Identifier,
		Purpose:    domain.CodePurpose(dbCode.Purpose),
		ExpiresAt:  dbCode.ExpiresAt,
		Used:       dbCode.IsUsed,
		UserID:     dbCode.UserID,
		DeviceID:   dbCode.DeviceID,
		IPAddress:  dbCode.IPAddress,
		CreatedAt:  dbCode.CreatedAt,
	}
}
