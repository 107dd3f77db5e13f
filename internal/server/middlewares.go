package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/chronos/internal/auth"
	"github.com/UnknownOlympus/chronos/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const viewerContextKey = "viewer"

// authRequired parses the bearer token and resolves the caller against the
// database. Tokens of deactivated accounts stop resolving and are rejected
// here, regardless of their expiry.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization"})
			return
		}

		claims, err := auth.ParseAccessToken(parts[1], s.cfg.Auth.Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		accountID, err := claims.AccountID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		viewer, err := s.emrepo.GetViewer(c.Request.Context(), accountID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account is not active"})
			return
		}

		c.Set(viewerContextKey, viewer)
		c.Next()
	}
}

func (s *Server) staffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentViewer(c).IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// currentViewer returns the caller resolved by authRequired. The zero Viewer
// comes back on routes outside the protected group.
func currentViewer(c *gin.Context) models.Viewer {
	value, _ := c.Get(viewerContextKey)
	viewer, _ := value.(models.Viewer)
	return viewer
}

// requestLogger tags every request with an id and logs the outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		s.log.Info("Request handled",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

func (s *Server) observeRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		s.metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		s.metrics.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
