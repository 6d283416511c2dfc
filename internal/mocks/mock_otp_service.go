package mocks

import (
	"context"
	"time"

	"github.com/you/mobileauthsvc/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	IssueFunc        func(ctx context.Context, ident domain.Identifier, purpose domain.CodePurpose, ownerID string, device domain.DeviceMeta) (*domain.VerificationCode, error)
	VerifyFunc       func(ctx context.Context, ident domain.Identifier, code string, purpose domain.CodePurpose) (*domain.VerificationCode, error)
	FindVerifiedFunc func(ctx context.Context, identifier string, purpose domain.CodePurpose) (*domain.VerificationCode, error)
	CanResendFunc    func(ctx context.Context, identifier string) (bool, int64, error)

	IssueCalls int
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Issue(ctx context.Context, ident domain.Identifier, purpose domain.CodePurpose, ownerID string, device domain.DeviceMeta) (*domain.VerificationCode, error) {
	m.IssueCalls++
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, ident, purpose, ownerID, device)
	}
	return &domain.VerificationCode{
		Code:       "4821",
		Identifier: ident.Value,
		Purpose:    purpose,
		UserID:     ownerID,
		ExpiresAt:  time.Now().Add(3 * time.Hour),
	}, nil
}

func (m *MockOTPService) Verify(ctx context.Context, ident domain.Identifier, code string, purpose domain.CodePurpose) (*domain.VerificationCode, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, ident, code, purpose)
	}
	return nil, domain.ErrCodeInvalid
}

func (m *MockOTPService) FindVerified(ctx context.Context, identifier string, purpose domain.CodePurpose) (*domain.VerificationCode, error) {
	if m.FindVerifiedFunc != nil {
		return m.FindVerifiedFunc(ctx, identifier, purpose)
	}
	return nil, domain.ErrNotVerified
}

func (m *MockOTPService) CanResend(ctx context.Context, identifier string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, identifier)
	}
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
