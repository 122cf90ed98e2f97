package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rrabbani2/GolfMaps/group"
)

func (s *Server) createGroup(c *gin.Context) {
	var params struct {
		CourseID string `json:"courseId"`
		Name     string `json:"name"`
		Contact  string `json:"contact"`
		TeeTime  string `json:"teeTime"`
		Note     string `json:"note"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	detail, err := s.groups.CreateGroup(c.Request.Context(), params.CourseID, params.Name, params.Contact, params.TeeTime, params.Note)
	if err != nil {
		switch err {
		case group.ErrCourseRequired, group.ErrNameRequired:
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		case group.ErrCourseNotFound:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownCourse)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (s *Server) joinGroup(c *gin.Context) {
	var params struct {
		GroupID string `json:"groupId"`
		Name    string `json:"name"`
		Contact string `json:"contact"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	detail, err := s.groups.JoinGroup(c.Request.Context(), params.GroupID, params.Name, params.Contact)
	if err != nil {
		switch err {
		case group.ErrNameRequired:
			groupJoins.WithLabelValues("invalid").Inc()
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		case group.ErrGroupNotFound:
			groupJoins.WithLabelValues("not_found").Inc()
			abortWithEncoding(c, http.StatusNotFound, errorUnknownGroup)
		case group.ErrGroupNotOpen:
			groupJoins.WithLabelValues("not_open").Inc()
			abortWithEncoding(c, http.StatusBadRequest, errorGroupNotOpen)
		case group.ErrGroupFull:
			groupJoins.WithLabelValues("full").Inc()
			abortWithEncoding(c, http.StatusBadRequest, errorGroupFull)
		default:
			groupJoins.WithLabelValues("error").Inc()
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	groupJoins.WithLabelValues("joined").Inc()
	c.JSON(http.StatusOK, detail)
}

func (s *Server) listGroups(c *gin.Context) {
	courseID := c.Query("courseId")

	details, err := s.groups.ListOpenGroups(c.Request.Context(), courseID)
	if err != nil {
		if err == group.ErrCourseRequired {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": details})
}
