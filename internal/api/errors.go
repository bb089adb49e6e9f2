package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolioquotes/internal/portfolio"
	"portfolioquotes/internal/quote"
)

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, portfolio.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, portfolio.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, quote.ErrUnknownSymbol):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusOf(err), gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
