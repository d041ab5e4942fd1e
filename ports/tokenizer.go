package ports

import "github.com/layer-3/dropregards/core"

// Tokenizer converts between identities and bearer tokens
type Tokenizer interface {
	IdentityToToken(identity *core.Identity) (string, error)
	TokenToIdentity(token string) (*core.Identity, error)
}
