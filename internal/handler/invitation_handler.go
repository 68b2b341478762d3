package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vertgarden/gardenhub/internal/service"
	"vertgarden/gardenhub/pkg/response"
)

type InvitationHandler struct {
	invitations service.InvitationService
	defaultDays int
	maxDays     int
}

func NewInvitationHandler(invitations service.InvitationService, defaultDays, maxDays int) *InvitationHandler {
	return &InvitationHandler{invitations: invitations, defaultDays: defaultDays, maxDays: maxDays}
}

type IssueInvitationRequest struct {
	ValidityDays int `json:"validity_days"`
}

// Issue creates a fresh invitation code for the calling administrator,
// superseding any previous one.
func (h *InvitationHandler) Issue(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req IssueInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	days := req.ValidityDays
	if days <= 0 {
		days = h.defaultDays
	}
	if days > h.maxDays {
		days = h.maxDays
	}

	code, err := h.invitations.Issue(c.Request.Context(), actor.ID, days)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, code)
}

// Current returns the caller's latest code with derived expiry state.
// Having no code is a successful empty response, not an error.
func (h *InvitationHandler) Current(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	current, err := h.invitations.Current(c.Request.Context(), actor.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, current)
}

type ValidateInvitationRequest struct {
	Code string `json:"code" binding:"required"`
}

// Validate is public: the registration form checks a code before submission.
// Validation never consumes the code.
func (h *InvitationHandler) Validate(c *gin.Context) {
	var req ValidateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	binding, err := h.invitations.Validate(c.Request.Context(), req.Code)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, binding)
}

func (h *InvitationHandler) Delete(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	codeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid code id")
		return
	}

	if err := h.invitations.Delete(c.Request.Context(), codeID, actor.ID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
