// Package auth contains the credential primitives of the server: signed
// bearer tokens, password hashing and the request-scoped identity.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/imagetags/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the account identity inside a token. The user name travels
// in the registered "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// TokenManager signs and verifies tokens with a single HMAC secret and
// algorithm fixed at construction.
type TokenManager struct {
	secret   []byte
	method   jwt.SigningMethod
	validity time.Duration
	now      func() time.Time
}

// NewTokenManager returns a TokenManager for the given HMAC algorithm name
// (HS256, HS384 or HS512). A zero validity issues tokens without "exp".
func NewTokenManager(secret string, algorithm string, validity time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("empty signing secret")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &TokenManager{
		secret:   []byte(secret),
		method:   method,
		validity: validity,
		now:      time.Now,
	}, nil
}

// Issue returns a signed token for the account.
func (m *TokenManager) Issue(userID int64, userName string) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userName,
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	if m.validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.validity))
	}

	return jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
}

// Verify checks the signature, algorithm and time-based claims of
// tokenString. All failures wrap common.ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", common.ErrInvalidToken)
	}

	return claims, nil
}
