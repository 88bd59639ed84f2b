package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

func getTestConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:     "test-secret-key-for-jwt-signing",
		Expiration: 60,
		Issuer:     "thqlabel-test",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := getTestConfig()
	userID := uuid.New()

	token, expiresAt, err := GenerateToken(userID, cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	claims, err := ValidateToken(token, cfg)
	require.NoError(t, err)

	subject, err := SubjectID(claims)
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
}

func TestValidateToken_Errors(t *testing.T) {
	cfg := getTestConfig()
	userID := uuid.New()

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name: "wrong secret",
			token: func() string {
				other := cfg
				other.Secret = "another-secret"
				tok, _, _ := GenerateToken(userID, other)
				return tok
			},
		},
		{
			name: "expired",
			token: func() string {
				tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
					"sub": userID.String(),
					"exp": time.Now().Add(-time.Minute).Unix(),
					"iss": cfg.Issuer,
				})
				s, _ := tok.SignedString([]byte(cfg.Secret))
				return s
			},
		},
		{
			name: "wrong issuer",
			token: func() string {
				other := cfg
				other.Issuer = "someone-else"
				tok, _, _ := GenerateToken(userID, other)
				return tok
			},
		},
		{
			name:  "garbage",
			token: func() string { return "not.a.token" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token(), cfg)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSubjectID(t *testing.T) {
	id := uuid.New()

	got, err := SubjectID(jwt.MapClaims{"user_id": id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = SubjectID(jwt.MapClaims{"sub": "not-a-uuid"})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = SubjectID(jwt.MapClaims{})
	assert.ErrorIs(t, err, ErrMissingSubject)
}
