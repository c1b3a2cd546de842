package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurobridge-disguise/internal/http/response"
	"github.com/yungbote/neurobridge-disguise/internal/services"
)

type DisguisePoolHandler struct {
	identity services.IdentityPool
}

func NewDisguisePoolHandler(identity services.IdentityPool) *DisguisePoolHandler {
	return &DisguisePoolHandler{identity: identity}
}

// POST /contexts/:id/pool
// body: { "count": 25 }
func (h *DisguisePoolHandler) Provision(c *gin.Context) {
	contextID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	var req struct {
		Count int `json:"count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := h.identity.Provision(c.Request.Context(), contextID, req.Count)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"context_id": contextID, "created": created})
}
