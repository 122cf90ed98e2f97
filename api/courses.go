package api

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/rrabbani2/GolfMaps/geo"
	"github.com/rrabbani2/GolfMaps/schema"
	"github.com/rrabbani2/GolfMaps/score"
	"github.com/rrabbani2/GolfMaps/store"
)

// listCourses returns all courses with usable coordinates, each annotated
// with its attribute fit score when slope and yardage are known.
func (s *Server) listCourses(c *gin.Context) {
	courses, err := s.mongoStore.ListCourses(c.Request.Context())
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	results := make([]schema.Course, 0, len(courses))
	for _, course := range courses {
		if !validCoordinate(course.Latitude, course.Longitude) {
			log.WithFields(log.Fields{
				"prefix":    "api",
				"course_id": course.ID,
				"name":      course.Name,
			}).Warn("skip course with invalid coordinates")
			continue
		}

		if course.SlopeRating != nil && course.Yardage != nil {
			fit := score.CalculateCourseFit(*course.SlopeRating, *course.Yardage, nil)
			course.FitScore = &fit
		}
		results = append(results, course)
	}

	c.JSON(http.StatusOK, gin.H{"courses": results})
}

// createCourse registers a new course, geocoding the address when no
// coordinates are supplied.
func (s *Server) createCourse(c *gin.Context) {
	var params struct {
		Name           string   `json:"name"`
		Address        string   `json:"address"`
		City           string   `json:"city"`
		State          string   `json:"state"`
		Country        string   `json:"country"`
		Latitude       *float64 `json:"lat"`
		Longitude      *float64 `json:"lng"`
		Yardage        *float64 `json:"yardage"`
		SlopeRating    *float64 `json:"slope_rating"`
		CourseRating   *float64 `json:"course_rating"`
		ConditionScore *float64 `json:"condition_score"`
		GooglePlaceID  string   `json:"google_place_id"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if strings.TrimSpace(params.Name) == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	course := schema.Course{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Name:           strings.TrimSpace(params.Name),
		Address:        params.Address,
		City:           params.City,
		State:          params.State,
		Country:        params.Country,
		Yardage:        params.Yardage,
		SlopeRating:    params.SlopeRating,
		CourseRating:   params.CourseRating,
		ConditionScore: params.ConditionScore,
		GooglePlaceID:  params.GooglePlaceID,
	}

	switch {
	case params.Latitude != nil && params.Longitude != nil:
		course.Latitude = *params.Latitude
		course.Longitude = *params.Longitude
	case params.Address != "":
		if s.searcher == nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		lat, lng, err := s.searcher.LookupCoordinate(courseQuery(params.Address, params.City, params.State))
		if err != nil {
			if err == geo.ErrLocationNotFound {
				abortWithEncoding(c, http.StatusBadRequest, errorLocationNotFound)
				return
			}
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
			return
		}
		course.Latitude = lat
		course.Longitude = lng
	default:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	if err := s.mongoStore.CreateCourse(c.Request.Context(), course); err != nil {
		if err == store.ErrCourseExists {
			abortWithEncoding(c, http.StatusForbidden, errorCourseTaken)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// courseQuery joins the address parts into a single geocoding query.
func courseQuery(parts ...string) string {
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}
	return strings.Join(fields, ", ")
}

func validCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	if lat == 0 && lng == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
