package identity

import (
	"crypto/rsa"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
	"github.com/samandr77/microservices/helpdesk/pkg/config"
)

// Claims of the access tokens issued by the backend session provider.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret    []byte
	publicKey *rsa.PublicKey
	opts      []jwt.ParserOption
}

func NewVerifier(cfg config.Identity) *Verifier {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}

	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &Verifier{
		secret: []byte(cfg.JWTSecret),
		opts:   opts,
	}
}

// WithPublicKey accepts RS256 tokens signed by the provider's private key.
func (v *Verifier) WithPublicKey(key *rsa.PublicKey) *Verifier {
	v.publicKey = key
	return v
}

func (v *Verifier) methods() []string {
	var methods []string

	if len(v.secret) > 0 {
		methods = append(methods, jwt.SigningMethodHS256.Alg())
	}

	if v.publicKey != nil {
		methods = append(methods, jwt.SigningMethodRS256.Alg())
	}

	return methods
}

func (v *Verifier) key(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
		return v.publicKey, nil
	}

	return v.secret, nil
}

// Verify returns entity.ErrIdentityProviderUnavailable when no signing key
// is configured and entity.ErrUnauthorized for any token it cannot trust.
func (v *Verifier) Verify(token string) (entity.Identity, error) {
	methods := v.methods()
	if len(methods) == 0 {
		return entity.Identity{}, entity.ErrIdentityProviderUnavailable
	}

	var claims Claims

	opts := append([]jwt.ParserOption{jwt.WithValidMethods(methods)}, v.opts...)

	_, err := jwt.ParseWithClaims(token, &claims, v.key, opts...)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("%w: %w", entity.ErrUnauthorized, err)
	}

	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return entity.Identity{}, fmt.Errorf("%w: token has no email", entity.ErrUnauthorized)
	}

	userID, err := uuid.FromString(claims.Subject)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("%w: subject is not a uuid", entity.ErrUnauthorized)
	}

	return entity.Identity{UserID: userID, Email: email}, nil
}
