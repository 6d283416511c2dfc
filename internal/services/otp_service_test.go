package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/you/mobileauthsvc/domain"
	"github.com/you/mobileauthsvc/internal/mocks"
)

// createOTPServiceForTest wires an OTPService against miniredis, a mock
// code store and a mock delivery gateway.
func createOTPServiceForTest(t *testing.T) (domain.OTPService, *mocks.MockVerificationCodeRepository, *mocks.MockDeliveryGateway, *miniredis.Miniredis, *clockwork.FakeClock) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	codeRepo := mocks.NewMockVerificationCodeRepository()
	gateway := mocks.NewMockDeliveryGateway()
	clock := clockwork.NewFakeClock()

	config := OTPConfig{
		Length:       4,
		TTL:          3 * time.Hour,
		ResendWindow: 60 * time.Second,
	}

	svc := NewOTPService(codeRepo, gateway, redisClient, clock, config)
	return svc, codeRepo, gateway, mr, clock
}

func TestOTPServiceImpl_Issue(t *testing.T) {
	tests := []struct {
		name           string
		identifier     string
		purpose        domain.CodePurpose
		ownerID        string
		expectedChan   string
		validateRecord func(t *testing.T, record *domain.VerificationCode, clock clockwork.Clock)
	}{
		{
			name:         "email identifier routes through email channel",
			identifier:   "user@example.com",
			purpose:      domain.PurposeRegistration,
			expectedChan: "email",
			validateRecord: func(t *testing.T, record *domain.VerificationCode, clock clockwork.Clock) {
				if record.UserID != "" {
					t.Errorf("registration code should have no owner, got %s", record.UserID)
				}
			},
		},
		{
			name:         "phone identifier routes through sms channel",
			identifier:   "+5511999990000",
			purpose:      domain.PurposeLogin,
			ownerID:      "u-1",
			expectedChan: "sms",
			validateRecord: func(t *testing.T, record *domain.VerificationCode, clock clockwork.Clock) {
				if record.UserID != "u-1" {
					t.Errorf("login code should carry owner u-1, got %s", record.UserID)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, gateway, _, clock := createOTPServiceForTest(t)

			ident := domain.ParseIdentifier(tt.identifier)
			record, err := svc.Issue(context.Background(), ident, tt.purpose, tt.ownerID, domain.DeviceMeta{})
			if err != nil {
				t.Fatalf("failed to issue code: %v", err)
			}

			if len(record.Code) != 4 {
				t.Errorf("expected 4-digit code, got %q", record.Code)
			}
			for _, ch := range record.Code {
				if ch < '0' || ch > '9' {
					t.Errorf("code contains non-digit: %q", record.Code)
				}
			}

			expectedExpiry := clock.Now().Add(3 * time.Hour)
			if !record.ExpiresAt.Equal(expectedExpiry) {
				t.Errorf("expected expiry %s, got %s", expectedExpiry, record.ExpiresAt)
			}

			sent := gateway.Sent()
			if len(sent) != 1 {
				t.Fatalf("expected one delivery, got %d", len(sent))
			}
			if sent[0].Channel != tt.expectedChan {
				t.Errorf("expected %s delivery, got %s", tt.expectedChan, sent[0].Channel)
			}
			if sent[0].To != tt.identifier {
				t.Errorf("expected delivery to %s, got %s", tt.identifier, sent[0].To)
			}

			tt.validateRecord(t, record, clock)
		})
	}
}

func TestOTPServiceImpl_Issue_InvalidatesPriorCodes(t *testing.T) {
	svc, codeRepo, _, mr, _ := createOTPServiceForTest(t)

	var deletedFor []string
	var createdAfterDelete bool
	codeRepo.DeleteUnconsumedFunc = func(_ context.Context, identifier string, _ domain.CodePurpose) error {
		deletedFor = append(deletedFor, identifier)
		createdAfterDelete = false
		return nil
	}
	codeRepo.CreateFunc = func(_ context.Context, code *domain.VerificationCode) error {
		createdAfterDelete = true
		return nil
	}

	ident := domain.ParseIdentifier("user@example.com")
	if _, err := svc.Issue(context.Background(), ident, domain.PurposeRegistration, "", domain.DeviceMeta{}); err != nil {
		t.Fatalf("failed to issue code: %v", err)
	}

	mr.FastForward(61 * time.Second)
	if _, err := svc.Issue(context.Background(), ident, domain.PurposeRegistration, "", domain.DeviceMeta{}); err != nil {
		t.Fatalf("failed to issue second code: %v", err)
	}

	if len(deletedFor) != 2 {
		t.Fatalf("prior codes should be invalidated on every issue, got %d calls", len(deletedFor))
	}
	if !createdAfterDelete {
		t.Error("new record must be created after prior codes are removed")
	}
}

func TestOTPServiceImpl_Issue_ResendThrottle(t *testing.T) {
	svc, _, _, mr, _ := createOTPServiceForTest(t)
	ident := domain.ParseIdentifier("+5511999990000")

	if _, err := svc.Issue(context.Background(), ident, domain.PurposeLogin, "u-1", domain.DeviceMeta{}); err != nil {
		t.Fatalf("first issue should succeed: %v", err)
	}

	// Inside the window the resend is rejected
	_, err := svc.Issue(context.Background(), ident, domain.PurposeLogin, "u-1", domain.DeviceMeta{})
	if !errors.Is(err, domain.ErrCodeResendLimit) {
		t.Fatalf("expected ErrCodeResendLimit, got %v", err)
	}

	// A different identifier is unaffected
	other := domain.ParseIdentifier("+5511999990001")
	if _, err := svc.Issue(context.Background(), other, domain.PurposeLogin, "u-2", domain.DeviceMeta{}); err != nil {
		t.Errorf("throttle must be per identifier: %v", err)
	}

	// After the window expires the resend goes through
	mr.FastForward(61 * time.Second)
	if _, err := svc.Issue(context.Background(), ident, domain.PurposeLogin, "u-1", domain.DeviceMeta{}); err != nil {
		t.Errorf("issue after window should succeed: %v", err)
	}
}

func TestOTPServiceImpl_Issue_DeliveryFailure(t *testing.T) {
	svc, codeRepo, gateway, _, _ := createOTPServiceForTest(t)

	var stored *domain.VerificationCode
	codeRepo.CreateFunc = func(_ context.Context, code *domain.VerificationCode) error {
		stored = code
		return nil
	}
	gateway.SendSMSFunc = func(to, message string) error {
		return fmt.Errorf("provider unavailable")
	}

	ident := domain.ParseIdentifier("+5511999990000")
	_, err := svc.Issue(context.Background(), ident, domain.PurposeLogin, "u-1", domain.DeviceMeta{})
	if !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}

	// The stored record stays behind and expires naturally
	if stored == nil {
		t.Error("code record should have been stored before the delivery attempt")
	}

	// The throttle key is dropped, so an immediate retry is allowed
	gateway.SendSMSFunc = nil
	if _, err := svc.Issue(context.Background(), ident, domain.PurposeLogin, "u-1", domain.DeviceMeta{}); err != nil {
		t.Errorf("retry after delivery failure should not be throttled: %v", err)
	}
}

func TestOTPServiceImpl_Verify(t *testing.T) {
	svc, codeRepo, _, _, _ := createOTPServiceForTest(t)

	codeRepo.ConsumeFunc = func(_ context.Context, identifier, code string, purpose domain.CodePurpose) (*domain.VerificationCode, error) {
		if identifier == "user@example.com" && code == "4821" && purpose == domain.PurposeRegistration {
			return &domain.VerificationCode{Identifier: identifier, Code: code, Purpose: purpose, Used: true}, nil
		}
		return nil, domain.ErrCodeInvalid
	}

	ident := domain.ParseIdentifier("user@example.com")
	record, err := svc.Verify(context.Background(), ident, "4821", domain.PurposeRegistration)
	if err != nil {
		t.Fatalf("verify should succeed: %v", err)
	}
	if !record.Used {
		t.Error("verified record should be used")
	}

	if _, err := svc.Verify(context.Background(), ident, "0000", domain.PurposeRegistration); !errors.Is(err, domain.ErrCodeInvalid) {
		t.Errorf("expected ErrCodeInvalid for wrong code, got %v", err)
	}
}

func TestOTPServiceImpl_CanResend(t *testing.T) {
	svc, _, _, mr, _ := createOTPServiceForTest(t)
	ident := domain.ParseIdentifier("user@example.com")

	ok, wait, err := svc.CanResend(context.Background(), ident.Value)
	if err != nil {
		t.Fatalf("failed to check resend: %v", err)
	}
	if !ok || wait != 0 {
		t.Errorf("resend should be allowed before any issue, got ok=%v wait=%d", ok, wait)
	}

	if _, err := svc.Issue(context.Background(), ident, domain.PurposeRegistration, "", domain.DeviceMeta{}); err != nil {
		t.Fatalf("failed to issue code: %v", err)
	}

	ok, wait, err = svc.CanResend(context.Background(), ident.Value)
	if err != nil {
		t.Fatalf("failed to check resend: %v", err)
	}
	if ok {
		t.Error("resend should be blocked inside the window")
	}
	if wait <= 0 || wait > 60 {
		t.Errorf("expected remaining wait within (0,60], got %d", wait)
	}

	mr.FastForward(61 * time.Second)
	ok, _, err = svc.CanResend(context.Background(), ident.Value)
	if err != nil {
		t.Fatalf("failed to check resend: %v", err)
	}
	if !ok {
		t.Error("resend should be allowed after the window")
	}
}
