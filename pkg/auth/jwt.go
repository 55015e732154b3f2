// Package auth provides password hashing and JWT issue/verify for the
// FreshMart API.
//
// Three token kinds exist: a short-lived access token, a long-lived refresh
// token signed with a separate secret, and a short-lived password-reset
// token. All carry only the user ID.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/freshmart/api/config"
)

const bcryptCost = 12

// Claims holds the typed JWT payload.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

func sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parse(token string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// GenerateAccessToken creates a signed access token for the given user.
func GenerateAccessToken(userID string) (string, error) {
	return sign(userID, []byte(config.AccessTokenSecret()), config.AccessTokenTTL())
}

// GenerateRefreshToken creates a long-lived token signed with the refresh
// secret. It is returned at login; no endpoint currently consumes it.
func GenerateRefreshToken(userID string) (string, error) {
	return sign(userID, []byte(config.RefreshTokenSecret()), config.RefreshTokenTTL())
}

// GenerateResetToken creates the short-lived token embedded in the
// password-reset email link.
func GenerateResetToken(userID string) (string, error) {
	return sign(userID, []byte(config.AccessTokenSecret()), config.ResetTokenTTL())
}

// ValidateAccessToken parses and validates an access or reset token.
func ValidateAccessToken(token string) (*Claims, error) {
	return parse(token, []byte(config.AccessTokenSecret()))
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
// bcrypt's comparison is constant time; failure reveals nothing beyond
// "no match".
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
