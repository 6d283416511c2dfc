package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/you/mobileauthsvc/domain"
	"github.com/you/mobileauthsvc/internal/infrastructure/database"
	"github.com/you/mobileauthsvc/internal/infrastructure/notifications"
)

// OTPServiceImpl implements domain.OTPService. Codes are persisted in the
// verification code store; resend throttling uses Redis TTL keys.
type OTPServiceImpl struct {
	codeRepo    domain.VerificationCodeRepository
	gateway     domain.DeliveryGateway
	redisClient *redis.Client
	clock       clockwork.Clock
	config      OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(codeRepo domain.VerificationCodeRepository, gateway domain.DeliveryGateway, redisClient *redis.Client, clock clockwork.Clock, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		codeRepo:    codeRepo,
		gateway:     gateway,
		redisClient: redisClient,
		clock:       clock,
		config:      config,
	}
}

func resendKey(identifier string) string {
	return fmt.Sprintf("otp:res:%s", identifier)
}

// Issue implements domain.OTPService. Any prior unconsumed code for the
// (identifier, purpose) pair is invalidated before the new one is stored,
// so at most one live code exists per pair.
func (s *OTPServiceImpl) Issue(ctx context.Context, ident domain.Identifier, purpose domain.CodePurpose, ownerID string, device domain.DeviceMeta) (*domain.VerificationCode, error) {
	key := resendKey(ident.Value)
	ok, err := database.SetNX(ctx, s.redisClient, key, 1, s.config.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}
	if !ok {
		return nil, domain.ErrCodeResendLimit
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	if err := s.codeRepo.DeleteUnconsumed(ctx, ident.Value, purpose); err != nil {
		return nil, fmt.Errorf("failed to invalidate prior codes: %w", err)
	}

	record := &domain.VerificationCode{
		Code:       code,
		Identifier: ident.Value,
		Purpose:    purpose,
		ExpiresAt:  s.clock.Now().Add(s.config.TTL),
		UserID:     ownerID,
		DeviceID:   device.DeviceID,
		IPAddress:  device.IPAddress,
	}
	if err := s.codeRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}

	// Delivery failure fails the whole issue operation for the caller, but
	// the stored code stays and expires naturally. The throttle key is
	// dropped so an immediate re-request is allowed.
	if err := s.deliver(ident, code); err != nil {
		s.redisClient.Del(ctx, key)
		return nil, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	return record, nil
}

// Verify implements domain.OTPService. Consumption is atomic per record;
// a second call with the same code fails even within the expiry window.
func (s *OTPServiceImpl) Verify(ctx context.Context, ident domain.Identifier, code string, purpose domain.CodePurpose) (*domain.VerificationCode, error) {
	return s.codeRepo.Consume(ctx, ident.Value, code, purpose)
}

// FindVerified implements domain.OTPService
func (s *OTPServiceImpl) FindVerified(ctx context.Context, identifier string, purpose domain.CodePurpose) (*domain.VerificationCode, error) {
	return s.codeRepo.FindVerified(ctx, identifier, purpose)
}

// CanResend implements domain.OTPService
func (s *OTPServiceImpl) CanResend(ctx context.Context, identifier string) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(identifier)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}
	if ttl <= 0 {
		return true, 0, nil
	}
	return false, int64(ttl.Seconds()), nil
}

// deliver routes the code through the channel matching the identifier kind.
func (s *OTPServiceImpl) deliver(ident domain.Identifier, code string) error {
	if ident.IsEmail() {
		return s.gateway.SendEmail(
			ident.Value,
			notifications.VerificationEmailSubject,
			notifications.VerificationEmailBody(code, s.config.TTL),
		)
	}
	return s.gateway.SendSMS(ident.Value, notifications.VerificationSMS(code, s.config.TTL))
}

// generateSecureCode generates a fixed-width random numeric code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
