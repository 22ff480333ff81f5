package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Preflight answers every OPTIONS request with 204 and permissive CORS headers,
// with or without an Origin header. Other methods pass through.
func Preflight(methods, headers []string, maxAge time.Duration) gin.HandlerFunc {
	allowMethods := strings.Join(methods, ",")
	allowHeaders := strings.Join(headers, ",")
	maxAgeSeconds := strconv.FormatInt(int64(maxAge/time.Second), 10)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Header("Access-Control-Max-Age", maxAgeSeconds)
		c.AbortWithStatus(http.StatusNoContent)
	}
}
