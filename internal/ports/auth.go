package ports

import "context"

type AuthClaims struct {
	UserID string
	Email  string
	Role   string
}

// TokenVerifier checks a bearer token minted by the external identity
// service. Issuance is out of scope here; the engine only verifies.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (AuthClaims, error)
}
