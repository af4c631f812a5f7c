package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/huddle-api/schema"
	"github.com/bitmark-inc/huddle-api/store"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// listRequests returns requests filtered by kind, comma separated
// statuses and requester, newest first
func (s *Server) listRequests(c *gin.Context) {
	var params struct {
		Kind      string `form:"kind"`
		Status    string `form:"status"`
		Requester string `form:"requester"`
		Limit     int    `form:"limit"`
	}

	if err := c.ShouldBindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	filter := store.RequestFilter{
		RequesterID: params.Requester,
		Limit:       params.Limit,
	}

	if params.Kind != "" {
		kind := schema.Kind(params.Kind)
		if !kind.Valid() {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		filter.Kind = kind
	}

	if params.Status != "" {
		for _, raw := range strings.Split(params.Status, ",") {
			status := schema.Status(strings.TrimSpace(raw))
			if !status.Valid() {
				abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
				return
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultListLimit
	case filter.Limit > maxListLimit:
		filter.Limit = maxListLimit
	}

	requests, err := s.store.ListRequests(filter)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (s *Server) getRequest(c *gin.Context) {
	r, err := s.store.GetRequest(c.Param("requestID"))
	if err == store.ErrRequestNotFound {
		abortWithEncoding(c, http.StatusNotFound, errorRequestNotFound, err)
		return
	} else if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": r})
}

// expireRequest closes a request by hand. It is the remedy for a request
// whose expiry job could not be scheduled.
func (s *Server) expireRequest(c *gin.Context) {
	id := c.Param("requestID")

	if _, err := s.store.GetRequest(id); err == store.ErrRequestNotFound {
		abortWithEncoding(c, http.StatusNotFound, errorRequestNotFound, err)
		return
	} else if shouldInterupt(err, c) {
		return
	}

	if err := s.lifecycle.ExpireRequest(c.Request.Context(), id); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorExpireRequest, err)
		return
	}

	r, err := s.store.GetRequest(id)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": r})
}
