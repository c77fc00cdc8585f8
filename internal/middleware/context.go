package middleware

import "context"

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller extracted from a JWT.
type Identity struct {
	UserID int
	Email  string
	Role   string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the caller identity, if the request carried a
// valid token.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
