package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rrabbani2/GolfMaps/schema"
	"github.com/rrabbani2/GolfMaps/score"
)

// attributeFit scores raw course attributes without a stored course.
// slope and yardage are required; slopeWeight and yardageWeight are
// optional and re-normalized by the scorer.
func (s *Server) attributeFit(c *gin.Context) {
	slope, err := strconv.ParseFloat(c.Query("slope"), 64)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	yardage, err := strconv.ParseFloat(c.Query("yardage"), 64)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var weights *score.FitWeights
	if c.Query("slopeWeight") != "" || c.Query("yardageWeight") != "" {
		slopeWeight, err := strconv.ParseFloat(c.DefaultQuery("slopeWeight", "0.5"), 64)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return
		}
		yardageWeight, err := strconv.ParseFloat(c.DefaultQuery("yardageWeight", "0.5"), 64)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return
		}
		weights = &score.FitWeights{Slope: slopeWeight, Yardage: yardageWeight}
	}

	scoreRequests.WithLabelValues("fit").Inc()

	c.JSON(http.StatusOK, gin.H{
		"score": score.CalculateCourseFit(slope, yardage, weights),
	})
}

// courseFitRating scores a stored course against a player skill level.
func (s *Server) courseFitRating(c *gin.Context) {
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

	var profile *schema.Profile
	if skill := c.Query("skill"); skill != "" {
		profile = &schema.Profile{SkillLevel: schema.SkillLevel(skill)}
	}

	rating := score.ComputeCourseFitRating(*course, profile)
	scoreRequests.WithLabelValues("fit").Inc()

	c.JSON(http.StatusOK, gin.H{
		"courseId": course.ID,
		"score":    rating.Score,
		"label":    rating.Label,
	})
}
