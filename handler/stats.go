package handler

import (
	"net/http"
	"time"

	"digest-service/metrics"
	"digest-service/middleware"
	"digest-service/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the engagement rollups for the digest progress and
// profile screens.
type StatsHandler struct {
	stats    *service.StatsService
	editions *service.EditionService
}

func NewStatsHandler(stats *service.StatsService, editions *service.EditionService) *StatsHandler {
	return &StatsHandler{stats: stats, editions: editions}
}

// Get handles GET /digest-api/users/me/stats. A user with no activity
// gets an all-zero rollup, not a 404.
func (h *StatsHandler) Get(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}

	metrics.StatsRequests.Inc()
	ctx := c.Request.Context()
	now := time.Now()

	stats, err := h.stats.Get(ctx, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	readInWindow, err := h.stats.ReadInCurrentWindow(ctx, userID, now)
	if err != nil {
		writeError(c, err)
		return
	}

	// Progress is measured against the current edition; a missing edition
	// just reads as zero total.
	totalArticles := int64(0)
	editionKey := service.CurrentEditionKey(now)
	if edition, err := h.editions.GetByKey(ctx, editionKey); err == nil {
		totalArticles = int64(len(edition.NewsItems))
	}

	c.JSON(http.StatusOK, gin.H{
		"totalTimeSpent":     stats.TotalTimeSpent,
		"articlesRead":       stats.ArticlesRead,
		"categoryEngagement": stats.CategoryEngagement,
		"topCategories":      service.TopCategories(stats, 3),
		"dailyStats":         stats.DailyStats,
		"lastActivity":       stats.LastActivity,
		"currentEdition": gin.H{
			"key":           editionKey,
			"totalArticles": totalArticles,
			"articlesRead":  readInWindow,
			"progress":      service.ProgressPercentage(int64(readInWindow), totalArticles),
		},
	})
}

// Trending handles GET /digest-api/trending.
func (h *StatsHandler) Trending(c *gin.Context) {
	key := c.Query("date")
	if key == "" {
		key = service.CurrentEditionKey(time.Now())
	}

	trends, err := h.stats.Trending(c.Request.Context(), key, 10)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"editionKey": key, "trending": trends})
}
