package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/domain/disguise"
	"github.com/yungbote/neurobridge-disguise/internal/http/response"
	"github.com/yungbote/neurobridge-disguise/internal/services"
)

type ContextModeHandler struct {
	modes services.ModeService
}

func NewContextModeHandler(modes services.ModeService) *ContextModeHandler {
	return &ContextModeHandler{modes: modes}
}

// GET /contexts/:id/mode
func (h *ContextModeHandler) Get(c *gin.Context) {
	contextID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	view, err := h.modes.Get(c.Request.Context(), contextID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"mode": view})
}

// PUT /contexts/:id/mode
// body: { "mode": "course_everywhere" } or { "value": 102 }
func (h *ContextModeHandler) Put(c *gin.Context) {
	contextID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	var req struct {
		Mode  string `json:"mode"`
		Value *int   `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var mode types.Mode
	switch {
	case req.Mode != "":
		mode, err = disguise.ParseMode(req.Mode)
		if err != nil {
			response.RespondServiceError(c, fmt.Errorf("%w: %v", services.ErrInvalidArgument, err))
			return
		}
	case req.Value != nil:
		mode = types.Mode(*req.Value)
	default:
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("mode or value required"))
		return
	}

	view, err := h.modes.Set(c.Request.Context(), contextID, mode)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"mode": view})
}
