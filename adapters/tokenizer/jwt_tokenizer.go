package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/ports"
)

// DefaultTokenTTL is how long an issued bearer token stays valid
const DefaultTokenTTL = 24 * time.Hour

// JWTTokenizer implements the Tokenizer interface using HS256 JWTs
type JWTTokenizer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a JWTTokenizer
type Option func(*JWTTokenizer)

// WithTTL overrides the token lifetime
func WithTTL(ttl time.Duration) Option {
	return func(j *JWTTokenizer) {
		if ttl > 0 {
			j.ttl = ttl
		}
	}
}

// WithClock overrides the time source used for issuing and validating
func WithClock(now func() time.Time) Option {
	return func(j *JWTTokenizer) {
		j.now = now
	}
}

// NewJWTTokenizer creates a new JWT tokenizer signing with secret
func NewJWTTokenizer(secret []byte, opts ...Option) ports.Tokenizer {
	j := &JWTTokenizer{
		secret: secret,
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// IdentityToToken signs a token for the identity. IssuedAt and ExpiresAt are
// filled in when zero.
func (j *JWTTokenizer) IdentityToToken(identity *core.Identity) (string, error) {
	if identity == nil || identity.Address == "" {
		return "", fmt.Errorf("token subject is empty: %w", core.ErrInvalidToken)
	}

	issuedAt := identity.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = j.now()
	}
	expiresAt := identity.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = issuedAt.Add(j.ttl)
	}

	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Address,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		HasProfile: identity.HasProfile,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// TokenToIdentity validates a token and returns the identity it carries
func (j *JWTTokenizer) TokenToIdentity(tokenStr string) (*core.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || claims.Subject == "" {
		return nil, core.ErrInvalidToken
	}

	identity := &core.Identity{
		Address:    claims.Subject,
		HasProfile: claims.HasProfile,
		ExpiresAt:  claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}

	return identity, nil
}
