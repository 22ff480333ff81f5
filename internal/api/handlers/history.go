package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/codyseavey/zhja-translate/internal/models"
	"github.com/codyseavey/zhja-translate/internal/services"
)

const (
	defaultHistoryLimit = 50
	defaultPopularLimit = 20
	maxListLimit        = 200
)

type HistoryHandler struct {
	cache *services.TranslationCacheService
}

func NewHistoryHandler(cache *services.TranslationCacheService) *HistoryHandler {
	return &HistoryHandler{cache: cache}
}

// GetHistory lists recently translated texts, optionally for one category
// GET /api/history?limit=50&category=地名
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), defaultHistoryLimit)
	category := models.Category(c.Query("category"))

	entries, err := h.cache.Recent(c.Request.Context(), limit, category)
	if err != nil {
		zap.S().Errorw("History query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "history temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}

// GetPopular lists the most requested texts
// GET /api/popular?limit=20
func (h *HistoryHandler) GetPopular(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), defaultPopularLimit)

	entries, err := h.cache.Popular(c.Request.Context(), limit)
	if err != nil {
		zap.S().Errorw("Popular query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "history temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}

func parseLimit(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}
