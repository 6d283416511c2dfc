package app

import (
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/mobileauthsvc/domain"
	"github.com/you/mobileauthsvc/internal/config"
	"github.com/you/mobileauthsvc/internal/infrastructure/audit"
	"github.com/you/mobileauthsvc/internal/infrastructure/auth"
	"github.com/you/mobileauthsvc/internal/infrastructure/database"
	"github.com/you/mobileauthsvc/internal/infrastructure/notifications"
	"github.com/you/mobileauthsvc/internal/infrastructure/repositories"
	"github.com/you/mobileauthsvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Clock       clockwork.Clock

	// Repositories
	UserRepo    domain.UserRepository
	CodeRepo    domain.VerificationCodeRepository
	RefreshRepo domain.RefreshTokenRepository

	// Services
	TokenSvc domain.TokenService
	Gateway  domain.DeliveryGateway
	OTPSvc   domain.OTPService
	AuthSvc  domain.MobileAuthService
	Audit    domain.AuditLogger
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg, Clock: clockwork.NewRealClock()}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.CodeRepo = repositories.NewVerificationCodeRepository(c.DB, c.Clock)
	c.RefreshRepo = repositories.NewRefreshTokenRepository(c.DB, c.Clock)
}

func (c *Container) initServices() {
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
		c.Clock,
	)

	sms := notifications.NewTwilioSMSSender(c.Config.TwilioSID, c.Config.TwilioToken, c.Config.TwilioFrom)
	email := notifications.NewSendGridEmailSender(c.Config.SendGridKey, c.Config.SendGridFrom, c.Config.SendGridName)
	c.Gateway = notifications.NewGateway(sms, email)

	otpConfig := services.OTPConfig{
		Length:       c.Config.OTP_Length,
		TTL:          c.Config.OTP_TTL,
		ResendWindow: c.Config.OTP_ResendWindow,
	}
	c.OTPSvc = services.NewOTPService(c.CodeRepo, c.Gateway, c.RedisClient, c.Clock, otpConfig)

	c.Audit = audit.NewLogAuditLogger(c.Clock)

	c.AuthSvc = services.NewMobileAuthService(
		c.UserRepo,
		c.RefreshRepo,
		c.OTPSvc,
		c.TokenSvc,
		c.Gateway,
		c.Audit,
		c.Clock,
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
