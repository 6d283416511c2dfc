package mocks

import (
	"context"

	"github.com/you/mobileauthsvc/domain"
)

// MockMobileAuthService implements domain.MobileAuthService for handler
// tests
type MockMobileAuthService struct {
	InitiateRegistrationFunc func(ctx context.Context, identifier string) (*domain.CodeChallenge, error)
	VerifyRegistrationFunc   func(ctx context.Context, identifier, code string) error
	CompleteRegistrationFunc func(ctx context.Context, identifier string, profile domain.Profile, device domain.DeviceMeta) (*domain.AuthResult, error)
	InitiateLoginFunc        func(ctx context.Context, identifier string) (*domain.CodeChallenge, error)
	VerifyLoginFunc          func(ctx context.Context, identifier, code string, device domain.DeviceMeta) (*domain.AuthResult, error)
	RefreshFunc              func(ctx context.Context, refreshToken string, device domain.DeviceMeta) (*domain.AuthResult, error)
	LogoutFunc               func(ctx context.Context, refreshToken string) error
	LogoutAllFunc            func(ctx context.Context, userID string) error
	ProfileFunc              func(ctx context.Context, userID string) (*domain.MobileUser, error)
}

// NewMockMobileAuthService creates a new mock with default behaviors
func NewMockMobileAuthService() *MockMobileAuthService {
	return &MockMobileAuthService{}
}

func (m *MockMobileAuthService) InitiateRegistration(ctx context.Context, identifier string) (*domain.CodeChallenge, error) {
	if m.InitiateRegistrationFunc != nil {
		return m.InitiateRegistrationFunc(ctx, identifier)
	}
	return &domain.CodeChallenge{Identifier: identifier, ExpiresIn: "3h"}, nil
}

func (m *MockMobileAuthService) VerifyRegistration(ctx context.Context, identifier, code string) error {
	if m.VerifyRegistrationFunc != nil {
		return m.VerifyRegistrationFunc(ctx, identifier, code)
	}
	return nil
}

func (m *MockMobileAuthService) CompleteRegistration(ctx context.Context, identifier string, profile domain.Profile, device domain.DeviceMeta) (*domain.AuthResult, error) {
	if m.CompleteRegistrationFunc != nil {
		return m.CompleteRegistrationFunc(ctx, identifier, profile, device)
	}
	return nil, domain.ErrNotVerified
}

func (m *MockMobileAuthService) InitiateLogin(ctx context.Context, identifier string) (*domain.CodeChallenge, error) {
	if m.InitiateLoginFunc != nil {
		return m.InitiateLoginFunc(ctx, identifier)
	}
	return &domain.CodeChallenge{Identifier: identifier, ExpiresIn: "3h"}, nil
}

func (m *MockMobileAuthService) VerifyLogin(ctx context.Context, identifier, code string, device domain.DeviceMeta) (*domain.AuthResult, error) {
	if m.VerifyLoginFunc != nil {
		return m.VerifyLoginFunc(ctx, identifier, code, device)
	}
	return nil, domain.ErrCodeInvalid
}

func (m *MockMobileAuthService) Refresh(ctx context.Context, refreshToken string, device domain.DeviceMeta) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken, device)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockMobileAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func (m *MockMobileAuthService) LogoutAll(ctx context.Context, userID string) error {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, userID)
	}
	return nil
}

func (m *MockMobileAuthService) Profile(ctx context.Context, userID string) (*domain.MobileUser, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.MobileAuthService = (*MockMobileAuthService)(nil)
