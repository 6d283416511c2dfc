package domain

import (
	"testing"
	"time"
)

func TestMobileUser_PrimaryIdentifier(t *testing.T) {
	tests := []struct {
		name          string
		user          MobileUser
		expectedKind  IdentifierKind
		expectedValue string
	}{
		{
			name:          "email account",
			user:          MobileUser{Email: "user@example.com"},
			expectedKind:  IdentifierEmail,
			expectedValue: "user@example.com",
		},
		{
			name:          "phone account",
			user:          MobileUser{Phone: "+5511999990000"},
			expectedKind:  IdentifierPhone,
			expectedValue: "+5511999990000",
		},
		{
			name:          "email wins when both are linked",
			user:          MobileUser{Email: "user@example.com", Phone: "+5511999990000"},
			expectedKind:  IdentifierEmail,
			expectedValue: "user@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident := tt.user.PrimaryIdentifier()

			if ident.Kind != tt.expectedKind {
				t.Errorf("expected kind %s, got %s", tt.expectedKind, ident.Kind)
			}
			if ident.Value != tt.expectedValue {
				t.Errorf("expected value %s, got %s", tt.expectedValue, ident.Value)
			}
		})
	}
}

func TestVerificationCode_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		expected  bool
	}{
		{
			name:      "future expiry is live",
			expiresAt: now.Add(time.Hour),
			expected:  false,
		},
		{
			name:      "past expiry is expired",
			expiresAt: now.Add(-time.Second),
			expected:  true,
		},
		{
			name:      "exact boundary counts as expired",
			expiresAt: now,
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := VerificationCode{ExpiresAt: tt.expiresAt}
			if got := code.Expired(now); got != tt.expected {
				t.Errorf("expected expired=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRefreshToken_Active(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		token    RefreshToken
		expected bool
	}{
		{
			name:     "unrevoked and unexpired",
			token:    RefreshToken{ExpiresAt: now.Add(24 * time.Hour)},
			expected: true,
		},
		{
			name:     "revoked token is inactive even before expiry",
			token:    RefreshToken{ExpiresAt: now.Add(24 * time.Hour), Revoked: true},
			expected: false,
		},
		{
			name:     "expired token is inactive",
			token:    RefreshToken{ExpiresAt: now.Add(-time.Minute)},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.Active(now); got != tt.expected {
				t.Errorf("expected active=%v, got %v", tt.expected, got)
			}
		})
	}
}
