// Package staffctx carries the authenticated staff identity through request
// contexts.
package staffctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Identity is the resolved caller: who they are and what they may do.
type Identity struct {
	StaffID snowflake.ID
	HotelID snowflake.ID
	Name    string
	Role    string
}

type identityKey struct{}

// WithIdentity stores the staff identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the staff identity from context, if set.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.StaffID != 0
}
