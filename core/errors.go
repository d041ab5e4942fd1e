package core

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrMissingToken       = errors.New("authentication token is missing")
	ErrTokenExpired       = errors.New("token has expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrInvalidNonce       = errors.New("invalid nonce")
	ErrNonceNotFound      = errors.New("nonce not found or expired")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrVerificationFailed = errors.New("transaction verification failed")

	// Ledger errors never leave the transaction verifier unwrapped.
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrLedgerUnavailable   = errors.New("ledger unavailable")
)
