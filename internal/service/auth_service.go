package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bkpsdm/asn-monitor-api/pkg/config"
	appErrors "github.com/bkpsdm/asn-monitor-api/pkg/errors"
)

// LoginRequest is the administrator login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claims are the JWT claims for the administrator session.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService issues and validates access tokens for the single configured
// administrator account.
type AuthService struct {
	cfg       config.AuthConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(cfg config.AuthConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{cfg: cfg, validator: validate, logger: logger}
}

// Login verifies the admin credentials and returns a signed token.
func (s *AuthService) Login(req LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and password are required")
	}

	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUsername)) != 1 || !s.passwordMatches(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid username or password")
	}

	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.cfg.TokenExpiry)
	claims := &Claims{
		Username: req.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   req.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	return &LoginResponse{Token: signed, ExpiresAt: expiresAt}, nil
}

// passwordMatches prefers the bcrypt hash; the plaintext fallback only
// exists for development setups without one.
func (s *AuthService) passwordMatches(password string) bool {
	if s.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}
