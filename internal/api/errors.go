package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/illineats/backend/internal/logging"
	"github.com/illineats/backend/internal/middleware"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/storage"
)

// maxIDList bounds the ids accepted by the grouped listing endpoints.
const maxIDList = 100

// respondError maps service errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrFoodNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrImageNotFound),
		errors.Is(err, service.ErrHallNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateReview):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidGoal),
		errors.Is(err, service.ErrUnsupportedImage),
		errors.Is(err, service.ErrInvalidImport):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrImageTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, storage.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentUser returns the authenticated user's id, answering 401 when absent
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

// uuidParam parses a path parameter, answering 400 when it is not a UUID
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// idListQuery parses a comma separated list of UUIDs from the foodIds query parameter
func idListQuery(c *gin.Context) ([]uuid.UUID, bool) {
	raw := c.Query("foodIds")
	if strings.TrimSpace(raw) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foodIds is required"})
		return nil, false
	}
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id: " + part})
			return nil, false
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) > maxIDList {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many food ids"})
		return nil, false
	}
	return ids, true
}
