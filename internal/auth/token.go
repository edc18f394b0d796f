package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rsinnovation/hub-api/internal/models"
)

// Session tokens live exactly 24 hours from issuance. There is no server-side
// revocation before natural expiry; rotating the secret invalidates every
// outstanding token at once.
const tokenTTL = 24 * time.Hour

var (
	// ErrTokenExpired marks a structurally valid, correctly signed token
	// whose lifetime has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid marks a token that is unparseable or whose signature
	// does not verify.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the signed assertion embedded in a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string      `json:"uid"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
}

// TokenManager issues and verifies signed JWTs for authenticated users.
type TokenManager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenManager creates a manager with the provided secret and issuer.
func NewTokenManager(secret, issuer string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue signs a JWT carrying the user's identity claims.
func (t *TokenManager) Issue(user models.User) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token string. It returns ErrTokenExpired for
// a correctly signed token past its lifetime and ErrTokenInvalid for anything
// unparseable or with a bad signature.
func (t *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
