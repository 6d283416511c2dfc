package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/mobileauthsvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBMobileUser represents the database model for MobileUser. Email and
// Phone are pointers so that absent identifiers store as NULL and the
// unique index on email never collides on empty strings.
type DBMobileUser struct {
	ID            string  `gorm:"primaryKey;size:36"`
	Email         *string `gorm:"uniqueIndex;size:255"`
	Phone         *string `gorm:"index;size:32"`
	FullName      string  `gorm:"size:128"`
	Gender        string  `gorm:"size:32"`
	DateOfBirth   time.Time
	EmailVerified bool
	PhoneVerified bool
	Status        string `gorm:"size:32;default:active"`
	FCMToken      string `gorm:"size:512"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBMobileUser) TableName() string {
	return "mobile_users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.MobileUser) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.MobileUser, error) {
	var dbUser DBMobileUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.MobileUser, error) {
	var dbUser DBMobileUser
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByIdentifier implements domain.UserRepository
func (r *UserRepositoryImpl) FindByIdentifier(ctx context.Context, ident domain.Identifier) (*domain.MobileUser, error) {
	if ident.IsEmail() {
		return r.FindByEmail(ctx, ident.Value)
	}
	return r.FindByPhone(ctx, ident.Value)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.MobileUser, error) {
	var dbUser DBMobileUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.MobileUser) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// VerifyEmail implements domain.UserRepository
func (r *UserRepositoryImpl) VerifyEmail(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&DBMobileUser{}).Where("id = ?", userID).Update("email_verified", true).Error
}

// VerifyPhone implements domain.UserRepository
func (r *UserRepositoryImpl) VerifyPhone(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&DBMobileUser{}).Where("id = ?", userID).Update("phone_verified", true).Error
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.MobileUser) *DBMobileUser {
	dbUser := &DBMobileUser{
		ID:            user.ID,
		FullName:      user.FullName,
		Gender:        user.Gender,
		DateOfBirth:   user.DateOfBirth,
		EmailVerified: user.EmailVerified,
		PhoneVerified: user.PhoneVerified,
		Status:        user.Status,
		FCMToken:      user.FCMToken,
	}
	if user.Email != "" {
		dbUser.Email = &user.Email
	}
	if user.Phone != "" {
		dbUser.Phone = &user.Phone
	}
	return dbUser
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBMobileUser) *domain.MobileUser {
	user := &domain.MobileUser{
		ID:            dbUser.ID,
		FullName:      dbUser.FullName,
		Gender:        dbUser.Gender,
		DateOfBirth:   dbUser.DateOfBirth,
		EmailVerified: dbUser.EmailVerified,
		PhoneVerified: dbUser.PhoneVerified,
		Status:        dbUser.Status,
		FCMToken:      dbUser.FCMToken,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
	if dbUser.Email != nil {
		user.Email = *dbUser.Email
	}
	if dbUser.Phone != nil {
		user.Phone = *dbUser.Phone
	}
	return user
}
