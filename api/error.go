package api

import (
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	errorInternalServer     = errorResponse{999, "internal server error"}
	errorInvalidParameters  = errorResponse{1001, "invalid parameters"}
	errorUnknownCourse      = errorResponse{1002, "course not found"}
	errorUnknownGroup       = errorResponse{1003, "group not found"}
	errorGroupNotOpen       = errorResponse{1004, "group is not open for new members"}
	errorGroupFull          = errorResponse{1005, "group is full (4 members)"}
	errorWeatherUnavailable = errorResponse{1006, "weather service unavailable"}
	errorCourseTaken        = errorResponse{1007, "course already exists"}
	errorLocationNotFound   = errorResponse{1008, "address could not be resolved"}
)

func abortWithEncoding(c *gin.Context, code int, resp errorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}

	c.AbortWithStatusJSON(code, gin.H{"error": resp})
}
