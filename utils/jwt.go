package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims is the identity carried by a session token.
type Claims struct {
	Subject string
	Email   string
	Role    string
}

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken creates a signed HS256 token for the given user. The token
// expires after the specified duration.
func GenerateToken(secret, subject, email, role string, duration time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(secret, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
}

// ParseClaims validates the token and extracts the identity it carries.
func ParseClaims(secret, tokenString string) (*Claims, error) {
	if secret == "" || tokenString == "" {
		return nil, ErrInvalidToken
	}
	token, err := ValidateToken(secret, tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &Claims{Subject: sub, Email: email, Role: role}, nil
}
