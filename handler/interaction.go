package handler

import (
	"net/http"
	"strconv"

	"digest-service/middleware"
	"digest-service/model"
	"digest-service/service"

	"github.com/gin-gonic/gin"
)

// InteractionHandler records reading activity for the authenticated user.
type InteractionHandler struct {
	interactions *service.InteractionService
}

func NewInteractionHandler(interactions *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactions: interactions}
}

// InteractionRequest is the recording payload. TimeSpent is seconds;
// ArticleID is either a plain edition document id or the compound
// "{documentId}_{newsItemId}" form.
type InteractionRequest struct {
	ArticleID  string `json:"articleId" binding:"required"`
	NewsItemID string `json:"newsItemId"`
	TimeSpent  int64  `json:"timeSpent"`
	Completed  bool   `json:"completed"`
}

// Record handles POST /digest-api/interactions.
func (h *InteractionHandler) Record(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}

	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TimeSpent < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timeSpent must be >= 0"})
		return
	}

	ref, err := model.ParseArticleRef(req.ArticleID, req.NewsItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.interactions.Record(c.Request.Context(), userID, ref, req.TimeSpent, req.Completed); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// History handles GET /digest-api/interactions.
func (h *InteractionHandler) History(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			limit = n
		}
	}

	interactions, err := h.interactions.History(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interactions": interactions, "count": len(interactions)})
}
