// Package wallet verifies messages signed by Solana wallets.
package wallet

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"

	"github.com/mr-tron/base58"
)

// Ed25519Verifier checks ed25519 signatures made by base58 wallet addresses
type Ed25519Verifier struct{}

// NewEd25519Verifier creates a new verifier
func NewEd25519Verifier() *Ed25519Verifier {
	return &Ed25519Verifier{}
}

// Verify reports whether signature is a valid signature of message by the key
// behind address. The signature may be base58 or standard base64 encoded.
// Malformed input never panics and yields false.
func (v *Ed25519Verifier) Verify(address, signature, message string) bool {
	pubKey, err := PublicKeyFromAddress(address)
	if err != nil {
		return false
	}

	sig, err := DecodeSignature(signature)
	if err != nil {
		return false
	}

	return ed25519.Verify(pubKey, []byte(message), sig)
}

// ValidAddress reports whether address decodes to an ed25519 public key
func (v *Ed25519Verifier) ValidAddress(address string) bool {
	return ValidateAddress(address) == nil
}

// PublicKeyFromAddress decodes a base58 wallet address to an ed25519 public key
func PublicKeyFromAddress(address string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("base58 decode failed: %w", err)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key length: got %d, want %d", len(decoded), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(decoded), nil
}

// AddressFromPublicKey encodes an ed25519 public key as a wallet address
func AddressFromPublicKey(pubKey ed25519.PublicKey) string {
	return base58.Encode(pubKey)
}

// ValidateAddress checks that address decodes to a public key
func ValidateAddress(address string) error {
	_, err := PublicKeyFromAddress(address)
	return err
}

// DecodeSignature decodes a 64 byte signature from base58 or base64
func DecodeSignature(signature string) ([]byte, error) {
	if signature == "" {
		return nil, fmt.Errorf("empty signature")
	}

	if sig, err := base58.Decode(signature); err == nil && len(sig) == ed25519.SignatureSize {
		return sig, nil
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return nil, fmt.Errorf("signature is neither base58 nor base64: %w", err)
	}
	if len(sig) != ed25519.SignatureSize {
		return nil, fmt.Errorf("invalid signature length: got %d, want %d", len(sig), ed25519.SignatureSize)
	}
	return sig, nil
}
