// Package identity abstracts the external identity provider: credential
// verification and custom role claims. Handlers and services depend on
// the Provider interface so tests can substitute fakes.
package identity

import (
	"context"
)

// Identity is a verified caller: provider uid plus the role claims that
// were baked into the credential at issue time.
type Identity struct {
	UID    string
	Role   string
	Admin  bool
	Claims map[string]interface{}
}

// IsAdmin reports whether the identity carries elevated privilege, via
// either the boolean admin flag or the role claim.
func (i *Identity) IsAdmin() bool {
	return i.Admin || i.Role == "admin"
}

type Provider interface {
	// VerifyToken validates a bearer credential, including a revocation
	// check: a revoked token fails even if structurally valid.
	VerifyToken(ctx context.Context, token string) (*Identity, error)

	// CustomClaims returns the user's current custom claim set, which
	// may be nil when none were ever set.
	CustomClaims(ctx context.Context, uid string) (map[string]interface{}, error)

	// SetCustomClaims replaces the user's custom claim set.
	SetCustomClaims(ctx context.Context, uid string, claims map[string]interface{}) error
}
