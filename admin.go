// admin.go - operator endpoints, served on a separate loopback listener
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/logging"
)

// adminRouter builds the ops listener. It carries no authentication and must
// stay bound to a private address.
func (s *site) adminRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestID(), logging.Middleware(s.logger.Named("admin")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"projects":  s.catalog.Len(),
			"relay":     s.relay.Name(),
			"analytics": s.events != nil,
		})
	})

	stats := r.Group("/")
	stats.Use(s.requireAnalytics())

	stats.GET("/stats", func(c *gin.Context) {
		st, err := s.events.Stats(c.Request.Context())
		if err != nil {
			s.logger.Error("error loading stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, st)
	})

	stats.GET("/export/stats", func(c *gin.Context) {
		st, err := s.events.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=portfolio-stats.json")
		c.JSON(http.StatusOK, st)
	})

	// Privacy compliance: drop everything past the retention window now.
	stats.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.events.Cleanup(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": n})
	})

	return r
}

func (s *site) requireAnalytics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.events == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "analytics disabled"})
			return
		}
		c.Next()
	}
}
