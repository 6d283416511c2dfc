package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/you/mobileauthsvc/domain"
)

// refreshTokenBytes is the entropy of an opaque refresh token. 40 random
// bytes hex-encoded, a namespace visibly distinct from the three-part JWT
// access tokens.
const refreshTokenBytes = 40

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	clock           clockwork.Clock
}

// NewJWTService creates a new JWT token service
func NewJWTService(secretKey, issuer string, accessTTL, refreshTTL time.Duration, clock clockwork.Clock) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
		clock:           clock,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(user *domain.MobileUser) (string, error) {
	jti, err := j.generateJTI()
	if err != nil {
		return "", err
	}

	now := j.clock.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"phone": user.Phone,
		"iss":   j.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(j.accessTokenTTL).Unix(),
		"jti":   jti,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GenerateRefreshToken implements domain.TokenService. The value is an
// opaque random string, never a signed token; validity is decided by the
// refresh token store.
func (j *JWTServiceImpl) GenerateRefreshToken() (string, error) {
	bytes := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	}, jwt.WithTimeFunc(j.clock.Now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if time.Unix(int64(exp), 0).Before(j.clock.Now()) {
		return nil, domain.ErrTokenExpired
	}

	tokenClaims := &domain.TokenClaims{
		UserID:    sub,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}

	if email, ok := claims["email"].(string); ok {
		tokenClaims.Email = email
	}
	if phone, ok := claims["phone"].(string); ok {
		tokenClaims.Phone = phone
	}

	return tokenClaims, nil
}

// AccessTTL implements domain.TokenService
func (j *JWTServiceImpl) AccessTTL() time.Duration { return j.accessTokenTTL }

// RefreshTTL implements domain.TokenService
func (j *JWTServiceImpl) RefreshTTL() time.Duration { return j.refreshTokenTTL }
