package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/internal/metrics"
	"github.com/layer-3/dropregards/ports"
)

// NoncePrefix starts every message a wallet is asked to sign
const NoncePrefix = "Sign this message to authenticate with DropRegards: "

// DefaultNonceTTL is how long an issued nonce can be signed
const DefaultNonceTTL = 5 * time.Minute

// AuthService handles authentication business logic
type AuthService struct {
	tokenizer ports.Tokenizer
	nonces    ports.NonceStore
	verifier  ports.SignatureVerifier
	profiles  ports.ProfileStore
	logger    *zap.Logger

	nonceTTL time.Duration
	now      func() time.Time
	random   io.Reader
}

// AuthOption configures an AuthService
type AuthOption func(*AuthService)

// WithNonceTTL sets how long an issued nonce stays valid
func WithNonceTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) {
		if ttl > 0 {
			s.nonceTTL = ttl
		}
	}
}

// WithAuthClock replaces the time source
func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthService) {
		s.now = now
	}
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tokenizer ports.Tokenizer,
	nonces ports.NonceStore,
	verifier ports.SignatureVerifier,
	profiles ports.ProfileStore,
	logger *zap.Logger,
	opts ...AuthOption,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuthService{
		tokenizer: tokenizer,
		nonces:    nonces,
		verifier:  verifier,
		profiles:  profiles,
		logger:    logger,
		nonceTTL:  DefaultNonceTTL,
		now:       time.Now,
		random:    rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateNonce issues a new message for address to sign, replacing any
// outstanding one
func (s *AuthService) CreateNonce(ctx context.Context, address string) (string, error) {
	if address == "" {
		return "", fmt.Errorf("%w: wallet address is required", core.ErrValidation)
	}
	if !s.verifier.ValidAddress(address) {
		return "", fmt.Errorf("%w: invalid wallet address", core.ErrValidation)
	}

	randomBytes := make([]byte, 16)
	if _, err := io.ReadFull(s.random, randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := s.now()
	nonce := &core.Nonce{
		Address:   address,
		Message:   NoncePrefix + unixSeconds(now) + "-" + hex.EncodeToString(randomBytes),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.nonceTTL),
	}

	if err := s.nonces.Put(ctx, nonce, s.nonceTTL); err != nil {
		return "", fmt.Errorf("failed to store nonce: %w", err)
	}

	return nonce.Message, nil
}

// VerifySignature authenticates a wallet that signed its outstanding nonce.
// The nonce is consumed before the signature is checked, so each nonce
// allows exactly one attempt.
func (s *AuthService) VerifySignature(ctx context.Context, address, signature, nonce string) (*core.LoginResult, error) {
	if address == "" || signature == "" || nonce == "" {
		return nil, fmt.Errorf("%w: wallet address, signature, and nonce are required", core.ErrValidation)
	}

	if err := s.nonces.Consume(ctx, address, nonce); err != nil {
		return nil, err
	}

	valid := s.verifier.Verify(address, signature, nonce)
	metrics.SignatureVerified(valid)
	if !valid {
		s.logger.Info("signature rejected", zap.String("address", address))
		return nil, core.ErrInvalidSignature
	}

	result := &core.LoginResult{Address: address}

	profile, err := s.profiles.FindByWallet(ctx, address)
	switch {
	case err == nil:
		result.HasProfile = true
		result.Username = profile.Username
	case !errors.Is(err, core.ErrNotFound):
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	token, err := s.tokenizer.IdentityToToken(&core.Identity{
		Address:    address,
		HasProfile: result.HasProfile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}
	result.Token = token

	return result, nil
}

// ValidateToken returns the identity carried by a bearer token
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*core.Identity, error) {
	if token == "" {
		return nil, core.ErrMissingToken
	}

	identity, err := s.tokenizer.TokenToIdentity(token)
	if err != nil {
		return nil, err
	}

	return identity, nil
}

// unixSeconds formats t as fractional unix seconds
func unixSeconds(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixNano())/float64(time.Second), 'f', 6, 64)
}
