package mocks

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/you/mobileauthsvc/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(user *domain.MobileUser) (string, error)
	GenerateRefreshTokenFunc func() (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	AccessTTLValue           time.Duration
	RefreshTTLValue          time.Duration

	counter atomic.Int64
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{
		AccessTTLValue:  15 * time.Minute,
		RefreshTTLValue: 30 * 24 * time.Hour,
	}
}

func (m *MockTokenService) GenerateAccessToken(user *domain.MobileUser) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(user)
	}
	return fmt.Sprintf("access-token-%s-%d", user.ID, m.counter.Add(1)), nil
}

func (m *MockTokenService) GenerateRefreshToken() (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc()
	}
	return fmt.Sprintf("refresh-token-%d", m.counter.Add(1)), nil
}

func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) AccessTTL() time.Duration  { return m.AccessTTLValue }
func (m *MockTokenService) RefreshTTL() time.Duration { return m.RefreshTTLValue }

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
