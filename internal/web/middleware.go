package web

import (
	"net/http"
	"time"

	"github.com/bastiangx/modsearch/internal/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs each request through a charm logger instead of gin's writer.
func RequestLogger() gin.HandlerFunc {
	l := logger.New("web")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Debug(c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start))
	}
}

// CORSMiddleware lets pages on other origins query the search API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
