package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// health always answers 200; a failing dependency only degrades the status.
func (s *Server) health(c *gin.Context) {
	status := "healthy"
	checks := gin.H{}
	for _, hc := range s.healthChecks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		err := hc.Check(ctx)
		cancel()
		if err != nil {
			status = "degraded"
			checks[hc.Name] = "down"
			s.logger.WithError(err).WithField("check", hc.Name).Warn("health check failed")
			continue
		}
		checks[hc.Name] = "up"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "checks": checks})
}
