package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/GuilhermeFusuma/portifolio/errs"
	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. A reset token never authenticates a session and a
// session token never resets a password.
const (
	purposeReset   = "password-reset"
	purposeSession = "session"
)

const (
	// DefaultResetTTL bounds the password-reset window.
	DefaultResetTTL = time.Hour
	// DefaultSessionTTL bounds how long a login stays valid.
	DefaultSessionTTL = 24 * time.Hour
)

type tokenClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-bounded tokens. Tokens are
// stateless: there is no server-side revocation list, and a reset token
// stays redeemable for any number of uses within its lifetime.
type TokenService struct {
	secret     []byte
	resetTTL   time.Duration
	sessionTTL time.Duration
}

func NewTokenService(secret []byte, resetTTL, sessionTTL time.Duration) *TokenService {
	if resetTTL <= 0 {
		resetTTL = DefaultResetTTL
	}
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &TokenService{secret: secret, resetTTL: resetTTL, sessionTTL: sessionTTL}
}

// IssueResetToken signs a password-reset token bound to the given email,
// expiring resetTTL from now.
func (s *TokenService) IssueResetToken(email string) (string, error) {
	return s.issue(purposeReset, email, s.resetTTL)
}

// VerifyResetToken validates signature and expiry and yields the embedded
// email. Returns errs.ErrTokenExpired past the expiry boundary and
// errs.ErrTokenInvalid for anything tampered or malformed.
func (s *TokenService) VerifyResetToken(token string) (string, error) {
	return s.verify(purposeReset, token)
}

// IssueSessionToken signs a login token for the given user id.
func (s *TokenService) IssueSessionToken(userID uint) (string, error) {
	return s.issue(purposeSession, strconv.FormatUint(uint64(userID), 10), s.sessionTTL)
}

// VerifySessionToken validates a login token and yields the user id.
func (s *TokenService) VerifySessionToken(token string) (uint, error) {
	subject, err := s.verify(purposeSession, token)
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, errs.ErrTokenInvalid
	}
	return uint(userID), nil
}

func (s *TokenService) issue(purpose, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", purpose, err)
	}
	return signed, nil
}

func (s *TokenService) verify(purpose, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errs.ErrTokenExpired
		}
		return "", errs.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.Purpose != purpose || claims.Subject == "" {
		return "", errs.ErrTokenInvalid
	}
	return claims.Subject, nil
}
