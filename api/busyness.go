package api

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/rrabbani2/GolfMaps/schema"
	"github.com/rrabbani2/GolfMaps/score"
)

// parseBusynessTime accepts either a full RFC 3339 timestamp or the
// shorter "2006-01-02T15:04" form that datetime-local form inputs emit.
func parseBusynessTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", value)
}

// courseBusyness estimates crowd level for a course at a point in time.
// The popularity signal is best-effort; a places outage degrades the
// score rather than failing the request.
func (s *Server) courseBusyness(c *gin.Context) {
	courseID := c.Query("courseId")
	if courseID == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	at := time.Now()
	if raw := c.Query("datetime"); raw != "" {
		parsed, err := parseBusynessTime(raw)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return
		}
		at = parsed
	}

	course, err := s.mongoStore.GetCourse(c.Request.Context(), courseID)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	if course == nil {
		abortWithEncoding(c, http.StatusNotFound, errorUnknownCourse)
		return
	}

	stats, err := s.mongoStore.GetCourseStats(c.Request.Context(), courseID)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	var popularity *schema.PopularitySignal
	if s.placesAPI != nil && course.GooglePlaceID != "" {
		popularity, err = s.placesAPI.PopularitySignal(c.Request.Context(), course.GooglePlaceID)
		if err != nil {
			log.WithFields(log.Fields{
				"prefix":    "api",
				"course_id": courseID,
			}).WithError(err).Warn("fail to fetch popularity signal")
			popularity = nil
		}
	}

	result := score.ComputeBusynessScore(*course, stats, at, popularity)
	scoreRequests.WithLabelValues("busyness").Inc()

	if err := s.mongoStore.AddBusynessRecord(c.Request.Context(), courseID, float64(result.Score), at); err != nil {
		log.WithFields(log.Fields{
			"prefix":    "api",
			"course_id": courseID,
		}).WithError(err).Warn("fail to record busyness history")
	}

	// trailing week of recorded scores, today's included
	average, err := s.mongoStore.GetBusynessAverage(c.Request.Context(), courseID, at.AddDate(0, 0, -6), at)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":    "api",
			"course_id": courseID,
		}).WithError(err).Warn("fail to aggregate busyness history")
		average = float64(result.Score)
	}

	c.JSON(http.StatusOK, gin.H{
		"courseId":    courseID,
		"datetime":    at.Format(time.RFC3339),
		"score":       result.Score,
		"label":       result.Label,
		"weekAverage": math.Round(average),
	})
}
