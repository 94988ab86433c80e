// Package hotelctx threads the active tenant through request contexts.
// Every store query filters by the hotel ID resolved here; there are no
// ambient tenant globals.
package hotelctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

type hotelKey struct{}

// WithHotelID stores the tenant hotel ID in the context.
func WithHotelID(ctx context.Context, hotelID snowflake.ID) context.Context {
	return context.WithValue(ctx, hotelKey{}, hotelID)
}

// HotelIDFromContext returns the tenant hotel ID from context, if set.
func HotelIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}
	switch typed := ctx.Value(hotelKey{}).(type) {
	case snowflake.ID:
		return typed, typed != 0
	case int64:
		return snowflake.ID(typed), typed != 0
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, parsed != 0
		}
	}
	return 0, false
}
