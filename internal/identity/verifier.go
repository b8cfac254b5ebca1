// Package identity treats the external identity provider as an opaque
// verifier: a credential goes in, a trusted claim comes out.
package identity

import (
	"context"
	"errors"
)

// ErrVerificationFailed covers every provider-side rejection of a credential.
var ErrVerificationFailed = errors.New("identity verification failed")

// Claim is the provider-verified identity of a caller.
type Claim struct {
	Subject string
	Name    string
	Email   string
	Picture string
}

// Verifier validates an inbound provider credential.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Claim, error)
}
