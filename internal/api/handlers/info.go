package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type InfoHandler struct {
	version  string
	provider string
	store    string
}

func NewInfoHandler(version, provider, store string) *InfoHandler {
	return &InfoHandler{version: version, provider: provider, store: store}
}

// GetInfo returns service metadata
// GET / and GET /api
func (h *InfoHandler) GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":     "中日翻译API",
		"version":  h.version,
		"provider": h.provider,
		"endpoints": gin.H{
			"translate":   "POST /api/translate",
			"stats":       "GET /api/stats",
			"daily_stats": "GET /api/stats/daily?days=7",
			"history":     "GET /api/history?limit=50&category=",
			"popular":     "GET /api/popular?limit=20",
		},
		"features": []string{"智能缓存", "统计分析", "词汇分类", "双向翻译", "读音标注"},
	})
}

// GetHealth reports liveness and the configured backends
// GET /health
func (h *InfoHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": h.provider,
		"store":    h.store,
	})
}
