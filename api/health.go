package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthz reports process liveness and reachability of the backing
// store. Optional collaborators are reported but never fail the check.
func (s *Server) healthz(c *gin.Context) {
	if err := s.mongoStore.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"mongo":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"weather": s.weatherAPI != nil,
		"places":  s.placesAPI != nil,
		"geocode": s.searcher != nil,
	})
}
