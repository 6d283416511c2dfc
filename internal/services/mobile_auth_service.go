package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/you/mobileauthsvc/domain"
	"github.com/you/mobileauthsvc/internal/infrastructure/notifications"
)

// MobileAuthServiceImpl implements domain.MobileAuthService. It exclusively
// owns transitions between identities, verification codes and refresh
// tokens; nothing else mutates them directly.
type MobileAuthServiceImpl struct {
	userRepo    domain.UserRepository
	refreshRepo domain.RefreshTokenRepository
	otpSvc      domain.OTPService
	tokenSvc    domain.TokenService
	gateway     domain.DeliveryGateway
	audit       domain.AuditLogger
	clock       clockwork.Clock
}

// NewMobileAuthService creates a new mobile auth orchestrator
func NewMobileAuthService(
	userRepo domain.UserRepository,
	refreshRepo domain.RefreshTokenRepository,
	otpSvc domain.OTPService,
	tokenSvc domain.TokenService,
	gateway domain.DeliveryGateway,
	audit domain.AuditLogger,
	clock clockwork.Clock,
) domain.MobileAuthService {
	return &MobileAuthServiceImpl{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		otpSvc:      otpSvc,
		tokenSvc:    tokenSvc,
		gateway:     gateway,
		audit:       audit,
		clock:       clock,
	}
}

// InitiateRegistration implements domain.MobileAuthService
func (s *MobileAuthServiceImpl) InitiateRegistration(ctx context.Context, identifier string) (*domain.CodeChallenge, error) {
	ident := domain.ParseIdentifier(identifier)

	if _, err := s.userRepo.FindByIdentifier(ctx, ident); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if err != domain.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	code, err := s.otpSvc.Issue(ctx, ident, domain.PurposeRegistration, "", domain.DeviceMeta{})
	if err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.DeliveryFailureEvent).WithIdentifier(identifier).WithError(err))
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.RegistrationInitiatedEvent).WithIdentifier(identifier))
	return &domain.CodeChallenge{
		Identifier: identifier,
		ExpiresIn:  formatExpiry(code.ExpiresAt.Sub(s.clock.Now())),
	}, nil
}

// VerifyRegistration implements domain.MobileAuthService. The consumed code
// row stays behind as the short-lived proof that the identifier was proven
// reachable; no identity is created yet.
func (s *MobileAuthServiceImpl) VerifyRegistration(ctx context.Context, identifier, code string) error {
	ident := domain.ParseIdentifier(identifier)
	if _, err := s.otpSvc.Verify(ctx, ident, code, domain.PurposeRegistration); err != nil {
		return err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.RegistrationVerifiedEvent).WithIdentifier(identifier))
	return nil
}

// CompleteRegistration implements domain.MobileAuthService
func (s *MobileAuthServiceImpl) CompleteRegistration(ctx context.Context, identifier string, profile domain.Profile, device domain.DeviceMeta) (*domain.AuthResult, error) {
	ident := domain.ParseIdentifier(identifier)

	if _, err := s.otpSvc.FindVerified(ctx, ident.Value, domain.PurposeRegistration); err != nil {
		if errors.Is(err, domain.ErrNotVerified) {
			return nil, domain.ErrNotVerified
		}
		return nil, fmt.Errorf("failed to check verification: %w", err)
	}

	// Re-check existence; the initiate-time check may have raced another
	// registration for the same identifier.
	if _, err := s.userRepo.FindByIdentifier(ctx, ident); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if err != domain.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	dob, err := time.Parse("2006-01-02", profile.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date of birth %q", domain.ErrInvalidProfile, profile.DateOfBirth)
	}

	user := &domain.MobileUser{
		FullName:    profile.FullName,
		Gender:      profile.Gender,
		DateOfBirth: dob,
		Status:      "active",
	}
	if ident.IsEmail() {
		user.Email = ident.Value
		user.EmailVerified = true
	} else {
		user.Phone = ident.Value
		user.PhoneVerified = true
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// The welcome email is a courtesy; the account already exists, so a
	// provider hiccup here must not fail the registration.
	if ident.IsEmail() {
		if err := s.gateway.SendEmail(ident.Value, notifications.WelcomeEmailSubject, notifications.WelcomeEmailBody(profile.FullName)); err != nil {
			log.Printf("WELCOME_EMAIL_FAILED: user_id=%s error=%v", user.ID, err)
		}
	}

	result, err := s.mintTokens(ctx, user, device)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.RegistrationCompletedEvent).WithUser(user.ID).WithIdentifier(identifier).WithDevice(device))
	return result, nil
}

// InitiateLogin implements domain.MobileAuthService. An unknown identifier
// fails before any code record is created.
func (s *MobileAuthServiceImpl) InitiateLogin(ctx context.Context, identifier string) (*domain.CodeChallenge, error) {
	ident := domain.ParseIdentifier(identifier)

	user, err := s.userRepo.FindByIdentifier(ctx, ident)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	code, err := s.otpSvc.Issue(ctx, ident, domain.PurposeLogin, user.ID, domain.DeviceMeta{})
	if err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.DeliveryFailureEvent).WithUser(user.ID).WithIdentifier(identifier).WithError(err))
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.LoginInitiatedEvent).WithUser(user.ID).WithIdentifier(identifier))
	return &domain.CodeChallenge{
		Identifier: identifier,
		ExpiresIn:  formatExpiry(code.ExpiresAt.Sub(s.clock.Now())),
	}, nil
}

// VerifyLogin implements domain.MobileAuthService. The owning identity
// comes from the code record captured at issuance, never re-derived from
// the identifier.
func (s *MobileAuthServiceImpl) VerifyLogin(ctx context.Context, identifier, code string, device domain.DeviceMeta) (*domain.AuthResult, error) {
	ident := domain.ParseIdentifier(identifier)

	record, err := s.otpSvc.Verify(ctx, ident, code, domain.PurposeLogin)
	if err != nil {
		return nil, err
	}
	if record.UserID == "" {
		return nil, domain.ErrCodeInvalid
	}

	user, err := s.userRepo.FindByID(ctx, record.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load code owner: %w", err)
	}

	result, err := s.mintTokens(ctx, user, device)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.LoginVerifiedEvent).WithUser(user.ID).WithIdentifier(identifier).WithDevice(device))
	return result, nil
}

// Refresh implements domain.MobileAuthService. Rotation is mandatory: the
// presented token is revoked and linked to its replacement. The replacement
// is created first so a crash between the two steps fails safely, and the
// conditional revoke decides the winner of concurrent refresh calls.
func (s *MobileAuthServiceImpl) Refresh(ctx context.Context, refreshToken string, device domain.DeviceMeta) (*domain.AuthResult, error) {
	old, err := s.refreshRepo.FindActive(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, old.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}

	if device.DeviceID == "" {
		device.DeviceID = old.DeviceID
	}

	result, err := s.mintTokens(ctx, user, device)
	if err != nil {
		return nil, err
	}

	revoked, err := s.refreshRepo.Revoke(ctx, old.Token, result.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if !revoked {
		// A concurrent refresh already rotated this token. Withdraw the
		// replacement minted above and fail.
		if _, cerr := s.refreshRepo.Revoke(ctx, result.RefreshToken, ""); cerr != nil {
			log.Printf("REFRESH_CLEANUP_FAILED: token owner=%s error=%v", user.ID, cerr)
		}
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokenRefreshLostEvent).WithUser(user.ID).WithDevice(device).WithError(domain.ErrTokenInvalid))
		return nil, domain.ErrTokenInvalid
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokenRefreshedEvent).WithUser(user.ID).WithDevice(device))
	return result, nil
}

// Logout implements domain.MobileAuthService; idempotent.
func (s *MobileAuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.refreshRepo.Revoke(ctx, refreshToken, ""); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent))
	return nil
}

// LogoutAll implements domain.MobileAuthService
func (s *MobileAuthServiceImpl) LogoutAll(ctx context.Context, userID string) error {
	if err := s.refreshRepo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutAllEvent).WithUser(userID))
	return nil
}

// Profile implements domain.MobileAuthService
func (s *MobileAuthServiceImpl) Profile(ctx context.Context, userID string) (*domain.MobileUser, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// mintTokens creates an access/refresh pair and persists the refresh
// record with the request's device metadata.
func (s *MobileAuthServiceImpl) mintTokens(ctx context.Context, user *domain.MobileUser, device domain.DeviceMeta) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	record := &domain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: s.clock.Now().Add(s.tokenSvc.RefreshTTL()),
		DeviceID:  device.DeviceID,
		UserAgent: device.UserAgent,
		IPAddress: device.IPAddress,
	}
	if err := s.refreshRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:             user,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        formatExpiry(s.tokenSvc.AccessTTL()),
		RefreshExpiresIn: formatExpiry(s.tokenSvc.RefreshTTL()),
	}, nil
}

// formatExpiry renders a duration as the compact hint callers display,
// e.g. "15m", "3h", "30d".
func formatExpiry(d time.Duration) string {
	day := 24 * time.Hour
	switch {
	case d >= day && d%day == 0:
		return fmt.Sprintf("%dd", int(d/day))
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d%time.Minute == 0:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return d.String()
	}
}
