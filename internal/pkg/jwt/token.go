package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSubject = errors.New("token has no subject")
)

// GenerateToken issues a signed token for userID. The identity provider is
// the real issuer; this is used by tooling and tests.
func GenerateToken(userID uuid.UUID, cfg models.JWTConfig) (string, int64, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.Expiration) * time.Minute).Unix()

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": expiresAt,
		"iat": time.Now().Unix(),
	}
	if cfg.Issuer != "" {
		claims["iss"] = cfg.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, cfg models.JWTConfig) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if cfg.Issuer != "" && !claims.VerifyIssuer(cfg.Issuer, true) {
		return nil, fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	}

	return claims, nil
}

// SubjectID extracts the user id from the sub claim, falling back to user_id
func SubjectID(claims jwt.MapClaims) (uuid.UUID, error) {
	for _, key := range []string{"sub", "user_id"} {
		raw, ok := claims[key].(string)
		if !ok || raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: %s is not a uuid", ErrInvalidToken, key)
		}
		return id, nil
	}
	return uuid.Nil, ErrMissingSubject
}
