package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vertgarden/gardenhub/internal/authz"
	jwtpkg "vertgarden/gardenhub/pkg/jwt"
	"vertgarden/gardenhub/pkg/response"
)

// RequireAction gates a route group on a resource-independent action.
// Must be used after JWTAuth middleware.
func RequireAction(engine *authz.Engine, action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsVal, exists := c.Get(ContextKeyUserClaims)
		if !exists {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}
		claims, ok := claimsVal.(*jwtpkg.Claims)
		if !ok {
			response.Unauthorized(c, "invalid claims")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			response.Unauthorized(c, "invalid user id")
			c.Abort()
			return
		}

		actor := authz.Actor{ID: userID, Role: claims.Role}
		if err := engine.Authorize(c.Request.Context(), action, actor, "", uuid.Nil); err != nil {
			response.Forbidden(c, "insufficient permission")
			c.Abort()
			return
		}

		c.Next()
	}
}
