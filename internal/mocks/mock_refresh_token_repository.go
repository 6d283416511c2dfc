package mocks

import (
	"context"

	"github.com/you/mobileauthsvc/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository for
// testing
type MockRefreshTokenRepository struct {
	CreateFunc           func(ctx context.Context, token *domain.RefreshToken) error
	FindActiveFunc       func(ctx context.Context, token string) (*domain.RefreshToken, error)
	RevokeFunc           func(ctx context.Context, token, replacedBy string) (bool, error)
	RevokeAllForUserFunc func(ctx context.Context, userID string) error
}

// NewMockRefreshTokenRepository creates a new mock with default behaviors
func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{}
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	if token.ID == "" {
		token.ID = "mock-refresh-id"
	}
	return nil
}

func (m *MockRefreshTokenRepository) FindActive(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx, token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, token, replacedBy string) (bool, error) {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, token, replacedBy)
	}
	return true, nil
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	if m.RevokeAllForUserFunc != nil {
		return m.RevokeAllForUserFunc(ctx, userID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)
