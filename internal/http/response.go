package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"phuongnam/internal/repository"
	"phuongnam/internal/service"
)

// Pagination echoes the window a collection response was cut with.
type Pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Query      string      `json:"query,omitempty"`
	Total      *int64      `json:"total,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func respondList(c *gin.Context, message string, data any, total int64, limit, offset int) {
	c.JSON(http.StatusOK, Envelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Total:      &total,
		Pagination: &Pagination{Limit: limit, Offset: offset, Total: total},
		Timestamp:  time.Now().UTC(),
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// abortWithError maps service and repository errors onto statuses.
// 5xx responses carry a generic message; the cause stays in the log.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
