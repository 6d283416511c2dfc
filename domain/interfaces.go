package domain

import (
	"context"
	"time"
)

// UserRepository defines identity data access operations
type UserRepository interface {
	Create(ctx context.Context, user *MobileUser) error
	FindByEmail(ctx context.Context, email string) (*MobileUser, error)
	FindByPhone(ctx context.Context, phone string) (*MobileUser, error)
	FindByIdentifier(ctx context.Context, ident Identifier) (*MobileUser, error)
	FindByID(ctx context.Context, id string) (*MobileUser, error)
	Update(ctx context.Context, user *MobileUser) error
	VerifyEmail(ctx context.Context, userID string) error
	VerifyPhone(ctx context.Context, userID string) error
}

// VerificationCodeRepository persists OTP challenges. Consume must be
// atomic per record: concurrent attempts with the same code yield exactly
// one success.
type VerificationCodeRepository interface {
	Create(ctx context.Context, code *VerificationCode) error
	// DeleteUnconsumed removes all unused codes for (identifier, purpose),
	// keeping at most one live code per pair.
	DeleteUnconsumed(ctx context.Context, identifier string, purpose CodePurpose) error
	// Consume marks a matching unused, unexpired code as used and returns
	// it. Not-found, expired and already-used all surface ErrCodeInvalid.
	Consume(ctx context.Context, identifier, code string, purpose CodePurpose) (*VerificationCode, error)
	// FindVerified returns the consumed, unexpired code for the pair, the
	// proof that the identifier was recently proven reachable.
	FindVerified(ctx context.Context, identifier string, purpose CodePurpose) (*VerificationCode, error)
}

// RefreshTokenRepository persists session grants and their rotation chain.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	// FindActive returns the record only when it is neither revoked nor
	// expired; everything else surfaces ErrTokenInvalid.
	FindActive(ctx context.Context, token string) (*RefreshToken, error)
	// Revoke marks the token revoked, recording its replacement when the
	// revocation is part of a rotation. Returns whether this call performed
	// the revocation, so racing rotations can detect a lost race.
	Revoke(ctx context.Context, token, replacedBy string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID string) error
}

// OTPService owns the verification-code lifecycle: generation, persistence,
// delivery and consumption.
type OTPService interface {
	Issue(ctx context.Context, ident Identifier, purpose CodePurpose, ownerID string, device DeviceMeta) (*VerificationCode, error)
	Verify(ctx context.Context, ident Identifier, code string, purpose CodePurpose) (*VerificationCode, error)
	// FindVerified exposes the consumed-code proof used to gate
	// registration completion.
	FindVerified(ctx context.Context, identifier string, purpose CodePurpose) (*VerificationCode, error)
	CanResend(ctx context.Context, identifier string) (bool, int64, error)
}

// TokenService mints and validates credentials. Access tokens are signed
// and self-contained; refresh tokens are opaque random values.
type TokenService interface {
	GenerateAccessToken(user *MobileUser) (string, error)
	GenerateRefreshToken() (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// DeliveryGateway abstracts the outbound email/SMS providers.
type DeliveryGateway interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// MobileAuthService is the orchestrator for registration, login and
// refresh flows.
type MobileAuthService interface {
	InitiateRegistration(ctx context.Context, identifier string) (*CodeChallenge, error)
	VerifyRegistration(ctx context.Context, identifier, code string) error
	CompleteRegistration(ctx context.Context, identifier string, profile Profile, device DeviceMeta) (*AuthResult, error)
	InitiateLogin(ctx context.Context, identifier string) (*CodeChallenge, error)
	VerifyLogin(ctx context.Context, identifier, code string, device DeviceMeta) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string, device DeviceMeta) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID string) error
	Profile(ctx context.Context, userID string) (*MobileUser, error)
}
