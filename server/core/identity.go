package core

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned when an identity token fails verification.
var ErrInvalidToken = errors.New("invalid identity token")

const (
	// IdentityTTL bounds how long a logged-out avatar can be reclaimed.
	IdentityTTL = 30 * 24 * time.Hour

	tokenIssuer = "avatarsync-server"
	secretEnv   = "AVATARSYNC_SECRET"
)

// IdentityClaims names the persistent avatar identity a token was issued for.
type IdentityClaims struct {
	Identity string `json:"identity"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies identity tokens.
type TokenIssuer struct {
	key []byte
	now func() time.Time
}

// NewTokenIssuer uses secret, then $AVATARSYNC_SECRET, then a random key.
// A random key means tokens do not survive a restart.
func NewTokenIssuer(secret string) *TokenIssuer {
	if secret == "" {
		secret = os.Getenv(secretEnv)
	}
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("identity key: %v", err))
		}
		log.Printf("Warning: %s not set, identity tokens will not survive a restart", secretEnv)
	}
	return &TokenIssuer{key: key, now: time.Now}
}

// NewIdentity returns a fresh avatar identity.
func NewIdentity() string {
	return uuid.NewString()
}

// Issue signs a token for identity.
func (ti *TokenIssuer) Issue(identity string) (string, error) {
	now := ti.now()
	claims := IdentityClaims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   identity,
			ExpiresAt: jwt.NewNumericDate(now.Add(IdentityTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.key)
}

// Verify returns the identity a token was issued for.
func (ti *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.key, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(ti.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Identity); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims.Identity, nil
}
