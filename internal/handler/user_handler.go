package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vertgarden/gardenhub/internal/model"
	"vertgarden/gardenhub/internal/service"
	"vertgarden/gardenhub/pkg/response"
)

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	users, err := h.users.List(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, users)
}

type ChangeRoleRequest struct {
	Role model.Role `json:"role" binding:"required"`
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.ChangeRole(c.Request.Context(), actor, targetID, req.Role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.users.Delete(c.Request.Context(), actor, targetID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
