package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/http/middleware"
	"github.com/yungbote/neurobridge-disguise/internal/http/response"
	"github.com/yungbote/neurobridge-disguise/internal/services"
)

type PromptHandler struct {
	prompt services.PromptService
}

func NewPromptHandler(prompt services.PromptService) *PromptHandler {
	return &PromptHandler{prompt: prompt}
}

type promptChoiceRequest struct {
	ContextID string `json:"context_id"`
	Choice    string `json:"choice"`
	ReturnURL string `json:"returnurl"`
	NextURL   string `json:"nexturl"`
}

// GET /disguise/prompt?contextid=&returnurl=&nexturl=
func (h *PromptHandler) Describe(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no session"))
		return
	}
	contextID, err := parseRequiredUUID(c.Query("contextid"), "contextid")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	info, err := h.prompt.Describe(c.Request.Context(), sess, contextID, c.Query("returnurl"), c.Query("nexturl"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"prompt": info})
}

// POST /disguise/prompt/disguise
// body: { "context_id": "...", "choice": "continue" | "disguise", "returnurl": "...", "nexturl": "..." }
func (h *PromptHandler) ToDisguise(c *gin.Context) {
	h.choose(c, h.prompt.ToDisguise)
}

// POST /disguise/prompt/real
// body: { "context_id": "...", "choice": "back" | "real", "returnurl": "...", "nexturl": "..." }
func (h *PromptHandler) ToReal(c *gin.Context) {
	h.choose(c, h.prompt.ToReal)
}

type chooseFunc func(ctx context.Context, sess *types.Session, req services.PromptRequest) (*services.PromptResult, error)

func (h *PromptHandler) choose(c *gin.Context, fn chooseFunc) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no session"))
		return
	}
	var req promptChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	contextID, err := parseOptionalUUID(req.ContextID, "context_id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	res, err := fn(c.Request.Context(), sess, services.PromptRequest{
		ContextID: contextID,
		Choice:    req.Choice,
		ReturnURL: req.ReturnURL,
		NextURL:   req.NextURL,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	middleware.SetSession(c, res.Session)
	response.RespondOK(c, gin.H{
		"redirect": res.Redirect,
		"identity": identityOf(res.Session),
	})
}
