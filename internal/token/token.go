package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeAuth is the scope tag carried by session tokens.
const ScopeAuth = "auth"

var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed token payload: who and for what scope.
type Claims struct {
	UserID string `json:"uid"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256-signed tokens using a
// process-wide secret. Verification is pure: revocation is the
// caller's concern (the middleware checks the user's token set).
type Service struct {
	secret []byte
}

// NewService returns a Service signing with the given secret.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs a token binding userID (hex) and scope.
// No expiry is set; tokens live until revoked. The random jti keeps
// every issued token distinct, so revoking one session never
// revokes its siblings.
func (s *Service) Issue(userID, scope string) (string, error) {
	jti, err := newTokenID()
	if err != nil {
		return "", err
	}
	claims := Claims{
		UserID: userID,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       jti,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks the signature and decodes the payload.
// Any failure collapses into ErrInvalidToken.
func (s *Service) Verify(tokenString string) (Claims, error) {
	var claims Claims
	t, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.UserID == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func newTokenID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
