package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"digest-service/events"
	"digest-service/metrics"
	"digest-service/service"

	"github.com/gin-gonic/gin"
)

// EditionHandler serves edition content and item view increments.
type EditionHandler struct {
	editions *service.EditionService
	events   *events.Publisher
}

func NewEditionHandler(editions *service.EditionService, publisher *events.Publisher) *EditionHandler {
	return &EditionHandler{editions: editions, events: publisher}
}

// GetCurrent returns the edition for the current window, or for the
// explicit date key when the caller sends one.
func (h *EditionHandler) GetCurrent(c *gin.Context) {
	key := c.Query("date")
	if key == "" {
		key = service.CurrentEditionKey(time.Now())
	}

	edition, err := h.editions.GetByKey(c.Request.Context(), key)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, edition)
}

// GetByKey returns one edition addressed by path.
func (h *EditionHandler) GetByKey(c *gin.Context) {
	edition, err := h.editions.GetByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, edition)
}

// GetCategories returns the distinct categories of the current edition.
func (h *EditionHandler) GetCategories(c *gin.Context) {
	edition, err := h.editions.Current(c.Request.Context(), time.Now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": edition.Categories(), "editionKey": edition.Key})
}

// RecordView bumps one item's view counter.
func (h *EditionHandler) RecordView(c *gin.Context) {
	key := c.Param("key")
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item id must be numeric"})
		return
	}

	category, err := h.editions.IncrementView(c.Request.Context(), key, itemID)
	if err != nil {
		writeError(c, err)
		return
	}

	metrics.ViewsRecorded.Inc()

	if err := h.events.PublishView(events.ViewEvent{
		EditionKey: key,
		NewsItemID: itemID,
		Category:   category,
	}); err != nil {
		log.Printf("[WARN] Failed to publish view event: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded", "editionKey": key, "newsItemId": itemID})
}
