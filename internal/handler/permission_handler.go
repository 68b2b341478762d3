package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vertgarden/gardenhub/internal/model"
	"vertgarden/gardenhub/internal/service"
	"vertgarden/gardenhub/pkg/response"
)

type PermissionHandler struct {
	permissions service.PermissionService
}

func NewPermissionHandler(permissions service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissions: permissions}
}

type GrantRequest struct {
	GranteeID uuid.UUID       `json:"grantee_id" binding:"required"`
	Kind      model.GrantKind `json:"kind" binding:"required"`
}

func (h *PermissionHandler) Grant(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	grant, err := h.permissions.Grant(c.Request.Context(), actor, itemID, req.GranteeID, req.Kind)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, grant)
}

type RevokeRequest struct {
	GranteeID uuid.UUID       `json:"grantee_id" binding:"required"`
	Kind      model.GrantKind `json:"kind" binding:"required"`
}

func (h *PermissionHandler) Revoke(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req RevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.permissions.Revoke(c.Request.Context(), actor, itemID, req.GranteeID, req.Kind); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *PermissionHandler) List(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	grants, err := h.permissions.List(c.Request.Context(), actor, itemID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, grants)
}
