package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/tavolo/internal/hotelctx"
	"github.com/smallbiznis/tavolo/internal/staffctx"
)

const contextIdentityKey = "staff_identity"

// AuthRequired resolves the bearer token to a staff identity and
// threads both the identity and the hotel scope into the request
// context. Every tenant-scoped query downstream reads the hotel ID
// from there, never from client input.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		identity, err := s.staffSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := staffctx.WithIdentity(c.Request.Context(), *identity)
		ctx = hotelctx.WithHotelID(ctx, identity.HotelID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextIdentityKey, identity)
		c.Next()
	}
}

// SubscriptionRequired rejects API calls for hotels whose subscription
// has lapsed. Auth endpoints stay reachable so an admin can still log
// in and see why.
func (s *Server) SubscriptionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.hotelSvc.CheckSubscription(c.Request.Context()); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func (s *Server) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := staffctx.IdentityFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if strings.EqualFold(identity.Role, role) {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
