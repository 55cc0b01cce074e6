package controllers

import (
	"errors"
	"net/http"

	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

// respondError maps the service-layer taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyInProgress):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNoConfidentResult):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
