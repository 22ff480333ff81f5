package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/codyseavey/zhja-translate/internal/middleware"
	"github.com/codyseavey/zhja-translate/internal/services"
)

type TranslateHandler struct {
	translator *services.Translator
}

func NewTranslateHandler(translator *services.Translator) *TranslateHandler {
	return &TranslateHandler{translator: translator}
}

type translateRequest struct {
	Text string `json:"text"`
}

// Translate translates the posted text
// POST /api/translate
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": "INVALID_BODY"})
		return
	}

	resp, err := h.translator.Translate(c.Request.Context(), req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp.Payload())
}

func (h *TranslateHandler) writeError(c *gin.Context, err error) {
	log := zap.S().With("request_id", middleware.GetRequestID(c))

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		log.Debugf("Rejected translation request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required", "code": "INVALID_INPUT"})
	case errors.Is(err, services.ErrInputTooLong):
		log.Debugf("Rejected translation request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "text is too long",
			"code":       "INPUT_TOO_LONG",
			"max_length": h.translator.MaxTextLength(),
		})
	default:
		var gwErr *services.GatewayError
		if errors.As(err, &gwErr) {
			log.Errorw("Translation gateway failed", "provider", gwErr.Provider, "status", gwErr.StatusCode, "error", err)
		} else {
			log.Errorw("Translation failed", "error", err)
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "translation service temporarily unavailable", "code": "SERVICE_ERROR"})
	}
}
