package domain

import "errors"

// Identity errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrNotVerified       = errors.New("identifier not verified")
	ErrInvalidProfile    = errors.New("invalid profile data")
)

// Verification code errors
var (
	ErrCodeInvalid     = errors.New("invalid or expired verification code")
	ErrCodeResendLimit = errors.New("verification code resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Delivery errors
var (
	ErrDeliveryFailed = errors.New("verification message delivery failed")
)
