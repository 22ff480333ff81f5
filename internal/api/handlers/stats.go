package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/codyseavey/zhja-translate/internal/services"
)

type StatsHandler struct {
	stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetOverview returns today's counters and distributions
// GET /api/stats
func (h *StatsHandler) GetOverview(c *gin.Context) {
	summary, err := h.stats.Summary(c.Request.Context())
	if err != nil {
		zap.S().Errorw("Stats overview failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "statistics temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}

// GetDaily returns per-day records, oldest first
// GET /api/stats/daily?days=7
func (h *StatsHandler) GetDaily(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	days = services.NormalizeDays(days)

	views, err := h.stats.Daily(c.Request.Context(), days)
	if err != nil {
		zap.S().Errorw("Daily stats failed", "days", days, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "statistics temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views,
		"period":  fmt.Sprintf("%d天", days),
	})
}
