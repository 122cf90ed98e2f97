package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rrabbani2/GolfMaps/schema"
)

// upsertCourseStats replaces the crowd-characteristics record of a
// course. The whole record is replaced, not merged, so callers send
// every field they want kept.
func (s *Server) upsertCourseStats(c *gin.Context) {
	courseID := c.Param("courseID")

	course, err := s.mongoStore.GetCourse(c.Request.Context(), courseID)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	if course == nil {
		abortWithEncoding(c, http.StatusNotFound, errorUnknownCourse)
		return
	}

	var params struct {
		PeakHours      *schema.PeakHours `json:"peak_hours"`
		HolidayFactor  *float64          `json:"holiday_factor"`
		BasePopularity *float64          `json:"base_popularity"`
	}
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	stats := schema.CourseStats{
		CourseID:       courseID,
		PeakHours:      params.PeakHours,
		HolidayFactor:  params.HolidayFactor,
		BasePopularity: params.BasePopularity,
	}

	if err := s.mongoStore.UpsertCourseStats(c.Request.Context(), stats); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
