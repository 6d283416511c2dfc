package domain

import "time"

// MobileUser represents an end-user account registered through the
// passwordless mobile flow. Exactly one of Email/Phone is populated at
// registration; the other may be filled later by linking flows.
type MobileUser struct {
	ID            string
	Email         string
	Phone         string
	FullName      string
	Gender        string
	DateOfBirth   time.Time
	EmailVerified bool
	PhoneVerified bool
	Status        string
	FCMToken      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PrimaryIdentifier returns the identifier the account was registered with.
func (u *MobileUser) PrimaryIdentifier() Identifier {
	if u.Email != "" {
		return Identifier{Kind: IdentifierEmail, Value: u.Email}
	}
	return Identifier{Kind: IdentifierPhone, Value: u.Phone}
}

// CodePurpose tags what a verification code was issued for.
type CodePurpose string

const (
	PurposeRegistration CodePurpose = "registration"
	PurposeLogin        CodePurpose = "login"
)

// VerificationCode represents one outstanding or consumed OTP challenge.
type VerificationCode struct {
	ID         string
	Code       string
	Identifier string
	Purpose    CodePurpose
	ExpiresAt  time.Time
	Used       bool
	UserID     string // owning identity, set for login codes
	DeviceID   string
	IPAddress  string
	CreatedAt  time.Time
}

// Expired reports whether the code is past its expiry at the given instant.
func (v *VerificationCode) Expired(now time.Time) bool {
	return !v.ExpiresAt.After(now)
}

// RefreshToken represents one active or superseded session grant.
type RefreshToken struct {
	ID              string
	Token           string
	UserID          string
	ExpiresAt       time.Time
	Revoked         bool
	ReplacedByToken string
	DeviceID        string
	UserAgent       string
	IPAddress       string
	CreatedAt       time.Time
}

// Active reports whether the token may still be presented for renewal.
func (r *RefreshToken) Active(now time.Time) bool {
	return !r.Revoked && r.ExpiresAt.After(now)
}

// DeviceMeta carries per-request device and client information captured
// on token-minting operations.
type DeviceMeta struct {
	DeviceID  string
	UserAgent string
	IPAddress string
}

// Profile holds the attributes supplied at registration completion.
type Profile struct {
	FullName    string
	Gender      string
	DateOfBirth string // YYYY-MM-DD
	Interests   []int64
}

// CodeChallenge is the caller-facing result of an initiate operation.
// The code itself is never returned.
type CodeChallenge struct {
	Identifier string
	ExpiresIn  string
}

// AuthResult represents a freshly minted credential pair.
type AuthResult struct {
	User             *MobileUser
	AccessToken      string
	RefreshToken     string
	ExpiresIn        string
	RefreshExpiresIn string
}

// TokenClaims represents validated access-token claims.
type TokenClaims struct {
	UserID    string `json:"sub"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
