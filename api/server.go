package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/rrabbani2/GolfMaps/external/openweather"
	"github.com/rrabbani2/GolfMaps/geo"
	"github.com/rrabbani2/GolfMaps/group"
	"github.com/rrabbani2/GolfMaps/schema"
	"github.com/rrabbani2/GolfMaps/store"
	"github.com/rrabbani2/GolfMaps/weather"
)

// WeatherSource is the upstream weather collaborator.
type WeatherSource interface {
	Current(lat, lng float64) (*openweather.CurrentWeather, error)
}

// PopularitySource is the upstream places collaborator.
type PopularitySource interface {
	PopularitySignal(ctx context.Context, placeID string) (*schema.PopularitySignal, error)
}

// Server serves the GolfMaps core API. The weather, places and geocoding
// collaborators are optional; endpoints degrade when one is absent.
type Server struct {
	router *gin.Engine
	server *http.Server

	mongoStore   store.GolfMapsStore
	groups       *group.Coordinator
	weatherCache *weather.Cache
	weatherAPI   WeatherSource
	placesAPI    PopularitySource
	searcher     geo.LocationSearcher

	traceMode bool
}

func NewServer(
	mongoStore store.GolfMapsStore,
	weatherCache *weather.Cache,
	weatherAPI WeatherSource,
	placesAPI PopularitySource,
	searcher geo.LocationSearcher,
	traceMode bool,
) *Server {
	if traceMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:       gin.New(),
		mongoStore:   mongoStore,
		groups:       group.NewCoordinator(mongoStore),
		weatherCache: weatherCache,
		weatherAPI:   weatherAPI,
		placesAPI:    placesAPI,
		searcher:     searcher,
		traceMode:    traceMode,
	}
	s.setupRouter()

	return s
}

func (s *Server) setupRouter() {
	r := s.router
	r.Use(gin.Recovery())
	r.Use(s.DumpRequest)

	r.GET("/healthz", s.healthz)
	r.GET("/metrics", metricsHandler())

	api := r.Group("/api")
	{
		api.GET("/courses", s.listCourses)
		api.POST("/courses", s.createCourse)
		api.GET("/courses/:courseID/fit", s.courseFitRating)
		api.PUT("/courses/:courseID/stats", s.upsertCourseStats)

		api.GET("/fit", s.attributeFit)
		api.GET("/busyness", s.courseBusyness)
		api.GET("/weather", s.courseWeather)

		api.GET("/groups", s.listGroups)
		api.POST("/groups", s.createGroup)
		api.POST("/groups/join", s.joinGroup)
	}
}

// Run blocks serving the API until the server is shut down.
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.WithField("prefix", "api").WithField("addr", addr).Info("server started")

	return s.server.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
