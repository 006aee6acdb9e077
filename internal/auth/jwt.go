package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gigflow_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user id in the standard "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 tokens issued by the identity service.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify returns the user id the credential was issued for.
func (v *TokenVerifier) Verify(credential string) (string, error) {
	credential = strings.TrimSpace(strings.TrimPrefix(credential, "Bearer "))
	if credential == "" {
		return "", apperrors.ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.Wrap(err, apperrors.CodeTokenExpired, "auth", "Token has expired", http.StatusUnauthorized)
		}
		return "", apperrors.Wrap(err, apperrors.CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)
	}

	if claims.Subject == "" {
		return "", apperrors.ErrInvalidToken
	}
	return claims.Subject, nil
}

// IssueToken signs a token for userID. Sessions are issued by the external
// identity service; this exists for tooling and tests.
func IssueToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
