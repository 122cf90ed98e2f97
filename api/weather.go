package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/rrabbani2/GolfMaps/schema"
	"github.com/rrabbani2/GolfMaps/score"
	"github.com/rrabbani2/GolfMaps/weather"
)

// courseWeather returns a weather snapshot with its derived condition
// score, either for a stored course or for raw coordinates. Snapshots
// are cached per rounded coordinate for the cache TTL.
func (s *Server) courseWeather(c *gin.Context) {
	lat, lng, ok := s.resolveWeatherCoordinate(c)
	if !ok {
		return
	}

	key := weather.CacheKey(lat, lng)
	if data, ok := s.weatherCache.Get(key); ok {
		weatherCacheLookups.WithLabelValues("hit").Inc()
		c.JSON(http.StatusOK, data)
		return
	}
	weatherCacheLookups.WithLabelValues("miss").Inc()

	if s.weatherAPI == nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorWeatherUnavailable)
		return
	}

	current, err := s.weatherAPI.Current(lat, lng)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": "api",
			"lat":    lat,
			"lng":    lng,
		}).WithError(err).Error("fail to fetch weather")
		abortWithEncoding(c, http.StatusServiceUnavailable, errorWeatherUnavailable, err)
		return
	}

	condition := score.CalculateCourseCondition(schema.WeatherConditions{
		Precipitation: current.Precipitation,
		WindSpeed:     current.WindSpeed,
		Temperature:   current.Temperature,
	})
	scoreRequests.WithLabelValues("condition").Inc()

	data := schema.WeatherData{
		Temperature:    int(math.Round(current.Temperature)),
		Description:    current.Description,
		Icon:           current.Icon,
		WindSpeed:      int(math.Round(current.WindSpeed)),
		ConditionScore: condition,
	}
	s.weatherCache.Put(key, data)

	c.JSON(http.StatusOK, data)
}

// resolveWeatherCoordinate picks the lookup coordinate from either a
// courseId or explicit lat/lng query parameters. It writes the error
// response itself when the request is unusable.
func (s *Server) resolveWeatherCoordinate(c *gin.Context) (float64, float64, bool) {
	if courseID := c.Query("courseId"); courseID != "" {
		course, err := s.mongoStore.GetCourse(c.Request.Context(), courseID)
		if err != nil {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
			return 0, 0, false
		}
		if course == nil {
			abortWithEncoding(c, http.StatusNotFound, errorUnknownCourse)
			return 0, 0, false
		}
		return course.Latitude, course.Longitude, true
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil || !validCoordinate(lat, lng) {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return 0, 0, false
	}

	return lat, lng, true
}
