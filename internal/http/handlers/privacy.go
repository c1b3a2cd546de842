package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurobridge-disguise/internal/http/response"
	"github.com/yungbote/neurobridge-disguise/internal/services"
)

type PrivacyHandler struct {
	privacy services.PrivacyService
}

func NewPrivacyHandler(privacy services.PrivacyService) *PrivacyHandler {
	return &PrivacyHandler{privacy: privacy}
}

// GET /privacy/users/:id/contexts
func (h *PrivacyHandler) UserContexts(c *gin.Context) {
	userID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	ids, err := h.privacy.ContextsForUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"context_ids": ids})
}

// GET /privacy/contexts/:id/users
func (h *PrivacyHandler) ContextUsers(c *gin.Context) {
	contextID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	ids, err := h.privacy.UsersInContext(c.Request.Context(), contextID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user_ids": ids})
}
