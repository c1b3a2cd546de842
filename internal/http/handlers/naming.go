package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/http/response"
	"github.com/yungbote/neurobridge-disguise/internal/services"
)

type NamingHandler struct {
	naming services.NamingService
}

func NewNamingHandler(naming services.NamingService) *NamingHandler {
	return &NamingHandler{naming: naming}
}

// GET /naming/keywords
func (h *NamingHandler) ListKeywords(c *gin.Context) {
	rows, err := h.naming.ListKeywords(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"keywords": rows})
}

// POST /naming/keywords
// body: { "keyword": "color", "items": ["red", "blue"] }
func (h *NamingHandler) CreateKeyword(c *gin.Context) {
	var req struct {
		Keyword string   `json:"keyword"`
		Items   []string `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	kw, err := h.naming.CreateKeywordWithItems(c.Request.Context(), req.Keyword, req.Items)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"keyword": kw})
}

// GET /naming/keywords/:keyword/items
func (h *NamingHandler) ListItems(c *gin.Context) {
	items, err := h.naming.ListItems(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"items": lo.Map(items, func(it *types.NamingItem, _ int) string { return it.Name }),
	})
}

// POST /naming/keywords/:keyword/items
// body: { "name": "teal" }
func (h *NamingHandler) AddItem(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := h.naming.AddItem(c.Request.Context(), c.Param("keyword"), req.Name)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// GET /contexts/:id/naming-set
func (h *NamingHandler) GetNamingSet(c *gin.Context) {
	contextID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	set, err := h.naming.NamingSetForContext(c.Request.Context(), contextID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if set == nil {
		response.RespondOK(c, gin.H{"naming_set": nil})
		return
	}
	response.RespondOK(c, gin.H{"naming_set": gin.H{"naming": set.Naming, "keywords": set.Keywords()}})
}

// PUT /contexts/:id/naming-set
// body: { "naming": "color animal" }
func (h *NamingHandler) PutNamingSet(c *gin.Context) {
	contextID, err := pathUUID(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	var req struct {
		Naming string `json:"naming"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	set, err := h.naming.SetNamingSetForContext(c.Request.Context(), contextID, req.Naming)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"naming_set": gin.H{"naming": set.Naming, "keywords": set.Keywords()}})
}
