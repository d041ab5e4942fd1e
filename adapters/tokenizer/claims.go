package tokenizer

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims combines standard claims with the profile flag
type IdentityClaims struct {
	jwt.RegisteredClaims
	HasProfile bool `json:"hasProfile"`
}
