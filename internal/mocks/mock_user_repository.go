package mocks

import (
	"context"

	"github.com/you/mobileauthsvc/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc           func(ctx context.Context, user *domain.MobileUser) error
	FindByEmailFunc      func(ctx context.Context, email string) (*domain.MobileUser, error)
	FindByPhoneFunc      func(ctx context.Context, phone string) (*domain.MobileUser, error)
	FindByIdentifierFunc func(ctx context.Context, ident domain.Identifier) (*domain.MobileUser, error)
	FindByIDFunc         func(ctx context.Context, id string) (*domain.MobileUser, error)
	UpdateFunc           func(ctx context.Context, user *domain.MobileUser) error
	VerifyEmailFunc      func(ctx context.Context, userID string) error
	VerifyPhoneFunc      func(ctx context.Context, userID string) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.MobileUser) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	if user.ID == "" {
		user.ID = "mock-user-id"
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.MobileUser, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.MobileUser, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByIdentifier(ctx context.Context, ident domain.Identifier) (*domain.MobileUser, error) {
	if m.FindByIdentifierFunc != nil {
		return m.FindByIdentifierFunc(ctx, ident)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.MobileUser, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.MobileUser) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) VerifyEmail(ctx context.Context, userID string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) VerifyPhone(ctx context.Context, userID string) error {
	if m.VerifyPhoneFunc != nil {
		return m.VerifyPhoneFunc(ctx, userID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
