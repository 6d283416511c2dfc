package mocks

import (
	"context"

	"github.com/you/mobileauthsvc/domain"
)

// MockVerificationCodeRepository implements domain.VerificationCodeRepository
// for testing
type MockVerificationCodeRepository struct {
	CreateFunc           func(ctx context.Context, code *domain.VerificationCode) error
	DeleteUnconsumedFunc func(ctx context.Context, identifier string, purpose domain.CodePurpose) error
	ConsumeFunc          func(ctx context.Context, identifier, code string, purpose domain.CodePurpose) (*domain.VerificationCode, error)
	FindVerifiedFunc     func(ctx context.Context, identifier string, purpose domain.CodePurpose) (*domain.VerificationCode, error)
}

// NewMockVerificationCodeRepository creates a new mock with default behaviors
func NewMockVerificationCodeRepository() *MockVerificationCodeRepository {
	return &MockVerificationCodeRepository{}
}

func (m *MockVerificationCodeRepository) Create(ctx context.Context, code *domain.VerificationCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	if code.ID == "" {
		code.ID = "mock-code-id"
	}
	return nil
}

func (m *MockVerificationCodeRepository) DeleteUnconsumed(ctx context.Context, identifier string, purpose domain.CodePurpose) error {
	if m.DeleteUnconsumedFunc != nil {
		return m.DeleteUnconsumedFunc(ctx, identifier, purpose)
	}
	return nil
}

func (m *MockVerificationCodeRepository) Consume(ctx context.Context, identifier, code string, purpose domain.CodePurpose) (*domain.VerificationCode, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, identifier, code, purpose)
	}
	return nil, domain.ErrCodeInvalid
}

func (m *MockVerificationCodeRepository) FindVerified(ctx context.Context, identifier string, purpose domain.CodePurpose) (*domain.VerificationCode, error) {
	if m.FindVerifiedFunc != nil {
		return m.FindVerifiedFunc(ctx, identifier, purpose)
	}
	return nil, domain.ErrNotVerified
}

// Compile-time interface compliance verification
var _ domain.VerificationCodeRepository = (*MockVerificationCodeRepository)(nil)
