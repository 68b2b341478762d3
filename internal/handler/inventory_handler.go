package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vertgarden/gardenhub/internal/service"
	"vertgarden/gardenhub/pkg/response"
)

type InventoryHandler struct {
	inventory service.InventoryService
}

func NewInventoryHandler(inventory service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) Create(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var input service.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	item, err := h.inventory.Create(c.Request.Context(), actor, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, item)
}

func (h *InventoryHandler) Get(c *gin.Context) {
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

	item, err := h.inventory.Get(c.Request.Context(), actor, itemID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *InventoryHandler) List(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	items, err := h.inventory.List(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *InventoryHandler) Update(c *gin.Context) {
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

	var input service.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	item, err := h.inventory.Update(c.Request.Context(), actor, itemID, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
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

	if err := h.inventory.Delete(c.Request.Context(), actor, itemID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

type RecordUsageRequest struct {
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Note     string `json:"note"`
}

func (h *InventoryHandler) RecordUsage(c *gin.Context) {
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

	var req RecordUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	usage, err := h.inventory.RecordUsage(c.Request.Context(), actor, itemID, req.Quantity, req.Note)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, usage)
}

func (h *InventoryHandler) History(c *gin.Context) {
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

	usages, err := h.inventory.History(c.Request.Context(), actor, itemID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, usages)
}
