// Package auth holds the token and password primitives: HS256 JWTs carrying
// the subject email, and bcrypt hashing.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodnest/foodnest/config"
)

// TokenKind distinguishes short-lived access tokens from refresh tokens.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims holds the typed JWT payload. The subject is the user's email;
// the user record is resolved from it on every request.
type Claims struct {
	Email string    `json:"email"`
	Kind  TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

func issue(email string, kind TokenKind, ttl time.Duration) (string, error) {
	claims := Claims{
		Email: email,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// IssueAccessToken creates a short-lived signed JWT for the given email.
func IssueAccessToken(email string) (string, error) {
	return issue(email, KindAccess, config.AccessTokenTTL())
}

// IssueRefreshToken creates a long-lived token used to mint new access tokens.
func IssueRefreshToken(email string) (string, error) {
	return issue(email, KindRefresh, config.RefreshTokenTTL())
}

// ValidateToken parses and verifies a JWT string (signature and expiry).
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
