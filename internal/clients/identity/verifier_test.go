package identity_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/helpdesk/internal/clients/identity"
	"github.com/samandr77/microservices/helpdesk/internal/entity"
	"github.com/samandr77/microservices/helpdesk/pkg/config"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims identity.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func validClaims(userID uuid.UUID) identity.Claims {
	return identity.Claims{
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "helpdesk-auth",
			Audience:  jwt.ClaimStrings{"authenticated"},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestVerifier_Verify(t *testing.T) {
	t.Parallel()

	userID := uuid.Must(uuid.NewV4())
	v := identity.NewVerifier(config.Identity{JWTSecret: testSecret, Issuer: "helpdesk-auth", Audience: "authenticated"})

	got, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(userID)))
	require.NoError(t, err)
	require.Equal(t, entity.Identity{UserID: userID, Email: "ana@example.com"}, got)

	for _, tt := range []struct {
		name   string
		mutate func(c *identity.Claims)
		key    []byte
		method jwt.SigningMethod
	}{
		{name: "expired", mutate: func(c *identity.Claims) { c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute)) }},
		{name: "no expiration", mutate: func(c *identity.Claims) { c.ExpiresAt = nil }},
		{name: "wrong issuer", mutate: func(c *identity.Claims) { c.Issuer = "someone-else" }},
		{name: "wrong audience", mutate: func(c *identity.Claims) { c.Audience = jwt.ClaimStrings{"anon"} }},
		{name: "no email", mutate: func(c *identity.Claims) { c.Email = "" }},
		{name: "subject not uuid", mutate: func(c *identity.Claims) { c.Subject = "ana" }},
		{name: "wrong key", key: []byte("another-secret-another-secret-another")},
		{name: "wrong method", method: jwt.SigningMethodHS512},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims := validClaims(userID)
			if tt.mutate != nil {
				tt.mutate(&claims)
			}

			key := []byte(testSecret)
			if tt.key != nil {
				key = tt.key
			}

			method := jwt.SigningMethod(jwt.SigningMethodHS256)
			if tt.method != nil {
				method = tt.method
			}

			_, err := v.Verify(sign(t, method, key, claims))
			require.ErrorIs(t, err, entity.ErrUnauthorized)
		})
	}

	_, err = v.Verify("not-a-jwt")
	require.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestVerifier_NotConfigured(t *testing.T) {
	t.Parallel()

	v := identity.NewVerifier(config.Identity{})

	_, err := v.Verify("anything")
	require.ErrorIs(t, err, entity.ErrIdentityProviderUnavailable)
}

func TestVerifier_PublicKey(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	userID := uuid.Must(uuid.NewV4())
	v := identity.NewVerifier(config.Identity{Issuer: "helpdesk-auth"}).WithPublicKey(&key.PublicKey)

	got, err := v.Verify(sign(t, jwt.SigningMethodRS256, key, validClaims(userID)))
	require.NoError(t, err)
	require.Equal(t, userID, got.UserID)

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	_, err = v.Verify(sign(t, jwt.SigningMethodRS256, other, validClaims(userID)))
	require.ErrorIs(t, err, entity.ErrUnauthorized)

	// no shared secret configured, so HMAC tokens are refused
	_, err = v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(userID)))
	require.ErrorIs(t, err, entity.ErrUnauthorized)
}
