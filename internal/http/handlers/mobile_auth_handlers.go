package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/mobileauthsvc/domain"
)

// MobileAuthHandlers handles the passwordless mobile auth HTTP requests
type MobileAuthHandlers struct {
	authSvc domain.MobileAuthService
}

// NewMobileAuthHandlers creates new mobile auth handlers
func NewMobileAuthHandlers(authSvc domain.MobileAuthService) *MobileAuthHandlers {
	return &MobileAuthHandlers{authSvc: authSvc}
}

// InitiateRequest represents a registration/login initiation request
type InitiateRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

// VerifyRequest represents a code verification request
type VerifyRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Code       string `json:"code" binding:"required,numeric"`
}

// CompleteRegistrationRequest represents the final registration step
type CompleteRegistrationRequest struct {
	Identifier  string  `json:"identifier" binding:"required"`
	FullName    string  `json:"fullName" binding:"required,min=2,max=50"`
	Gender      string  `json:"gender" binding:"required,oneof=male female other"`
	DateOfBirth string  `json:"dateOfBirth" binding:"required"`
	Interests   []int64 `json:"interests"`
	DeviceID    string  `json:"deviceId"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
	DeviceID     string `json:"deviceId"`
}

// LogoutRequest represents a logout request
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// deviceMeta captures device and client information from the request
func deviceMeta(c *gin.Context, bodyDeviceID string) domain.DeviceMeta {
	deviceID := bodyDeviceID
	if deviceID == "" {
		deviceID = c.GetHeader("X-Device-Id")
	}
	return domain.DeviceMeta{
		DeviceID:  deviceID,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

// userProjection is the minimal user view returned with token pairs
func userProjection(user *domain.MobileUser) gin.H {
	return gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"phoneNumber":   user.Phone,
		"fullName":      user.FullName,
		"emailVerified": user.EmailVerified,
		"phoneVerified": user.PhoneVerified,
	}
}

// authResultBody renders a minted token pair response
func authResultBody(result *domain.AuthResult) gin.H {
	return gin.H{
		"user":             userProjection(result.User),
		"accessToken":      result.AccessToken,
		"refreshToken":     result.RefreshToken,
		"expiresIn":        result.ExpiresIn,
		"refreshExpiresIn": result.RefreshExpiresIn,
	}
}

// InitiateRegistration handles POST /auth/mobile/register/initiate
func (h *MobileAuthHandlers) InitiateRegistration(c *gin.Context) {
	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := h.authSvc.InitiateRegistration(c.Request.Context(), req.Identifier)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		case errors.Is(err, domain.ErrCodeResendLimit):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting a new code"})
		case errors.Is(err, domain.ErrDeliveryFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration initiation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"identifier": challenge.Identifier,
			"expiresIn":  challenge.ExpiresIn,
		},
	})
}

// VerifyRegistration handles POST /auth/mobile/register/verify
func (h *MobileAuthHandlers) VerifyRegistration(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.VerifyRegistration(c.Request.Context(), req.Identifier, req.Code); err != nil {
		if errors.Is(err, domain.ErrCodeInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired verification code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"success":    true,
			"identifier": req.Identifier,
		},
	})
}

// CompleteRegistration handles POST /auth/mobile/register/complete
func (h *MobileAuthHandlers) CompleteRegistration(c *gin.Context) {
	var req CompleteRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := domain.Profile{
		FullName:    req.FullName,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Interests:   req.Interests,
	}

	result, err := h.authSvc.CompleteRegistration(c.Request.Context(), req.Identifier, profile, deviceMeta(c, req.DeviceID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotVerified):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifier not verified. Please verify your identifier first."})
		case errors.Is(err, domain.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		case errors.Is(err, domain.ErrInvalidProfile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": authResultBody(result)})
}

// InitiateLogin handles POST /auth/mobile/login/initiate
func (h *MobileAuthHandlers) InitiateLogin(c *gin.Context) {
	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := h.authSvc.InitiateLogin(c.Request.Context(), req.Identifier)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, domain.ErrCodeResendLimit):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting a new code"})
		case errors.Is(err, domain.ErrDeliveryFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login initiation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"identifier": challenge.Identifier,
			"expiresIn":  challenge.ExpiresIn,
		},
	})
}

// VerifyLogin handles POST /auth/mobile/login/verify
func (h *MobileAuthHandlers) VerifyLogin(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.VerifyLogin(c.Request.Context(), req.Identifier, req.Code, deviceMeta(c, ""))
	if err != nil {
		if errors.Is(err, domain.ErrCodeInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired verification code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": authResultBody(result)})
}

// Refresh handles POST /auth/mobile/refresh
func (h *MobileAuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken, deviceMeta(c, req.DeviceID))
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"accessToken":      result.AccessToken,
			"refreshToken":     result.RefreshToken,
			"expiresIn":        result.ExpiresIn,
			"refreshExpiresIn": result.RefreshExpiresIn,
		},
	})
}

// Logout handles POST /auth/mobile/logout (requires authentication)
func (h *MobileAuthHandlers) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Logged out successfully"},
	})
}

// LogoutAll handles POST /auth/mobile/logout-all (requires authentication)
func (h *MobileAuthHandlers) LogoutAll(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	if err := h.authSvc.LogoutAll(c.Request.Context(), userID.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "All sessions revoked"},
	})
}

// Me handles GET /auth/mobile/me (requires authentication)
func (h *MobileAuthHandlers) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.authSvc.Profile(c.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"phoneNumber":   user.Phone,
			"fullName":      user.FullName,
			"gender":        user.Gender,
			"emailVerified": user.EmailVerified,
			"phoneVerified": user.PhoneVerified,
			"createdAt":     user.CreatedAt,
		},
	})
}
