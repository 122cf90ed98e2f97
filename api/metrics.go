package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	scoreRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golfmaps_score_requests_total",
		Help: "Score computations served, by scorer kind.",
	}, []string{"kind"})

	groupJoins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golfmaps_group_joins_total",
		Help: "Group join attempts, by outcome.",
	}, []string{"outcome"})

	weatherCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golfmaps_weather_cache_lookups_total",
		Help: "Weather cache lookups, by result.",
	}, []string{"result"})
)

func metricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
