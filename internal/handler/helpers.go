package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vertgarden/gardenhub/internal/authz"
	"vertgarden/gardenhub/internal/handler/middleware"
	"vertgarden/gardenhub/internal/service"
	jwtpkg "vertgarden/gardenhub/pkg/jwt"
	"vertgarden/gardenhub/pkg/response"
)

var ErrNoClaims = errors.New("claims not found in context")

func actorFromContext(c *gin.Context) (authz.Actor, error) {
	claimsVal, exists := c.Get(middleware.ContextKeyUserClaims)
	if !exists {
		return authz.Actor{}, ErrNoClaims
	}
	claims, ok := claimsVal.(*jwtpkg.Claims)
	if !ok {
		return authz.Actor{}, ErrNoClaims
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return authz.Actor{}, err
	}
	return authz.Actor{ID: userID, Role: claims.Role}, nil
}

// writeServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is a storage or programming failure and surfaces as a 500.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authz.ErrInsufficientPermission):
		response.Forbidden(c, "insufficient permission")
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCodeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrRefreshInvalid):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrNotCodeOwner),
		errors.Is(err, service.ErrWrongLocation):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrCodeLength),
		errors.Is(err, service.ErrCodeExpired),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidGrantKind),
		errors.Is(err, service.ErrAdminHasNoLocation),
		errors.Is(err, service.ErrCodeGenerationExhausted):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "internal error")
	}
}
