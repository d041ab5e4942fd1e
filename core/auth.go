package core

import "time"

// Nonce represents an authentication challenge issued to a wallet
type Nonce struct {
	Address   string    // Wallet address the nonce was issued to
	Message   string    // Text the wallet must sign
	IssuedAt  time.Time // When the nonce was created
	ExpiresAt time.Time // When the nonce stops being accepted
}

// Identity represents an authenticated wallet carried by a bearer token
type Identity struct {
	Address    string    // Wallet address of the user (token subject)
	HasProfile bool      // Whether a profile existed when the token was issued
	IssuedAt   time.Time // When the token was issued
	ExpiresAt  time.Time // When the token expires
}

// LoginResult is returned after a successful signature verification
type LoginResult struct {
	Token      string
	Address    string
	HasProfile bool
	Username   string
}
