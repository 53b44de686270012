package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"release-viewer/internal/core/domain"
)

// statusClientClosedRequest is reported when the browser went away before the
// load finished.
const statusClientClosedRequest = 499

func errorStatus(err error) (int, string) {
	switch {
	// Conflict errors
	case errors.Is(err, domain.ErrLoadSuperseded):
		return http.StatusConflict, err.Error()

	// Cancellation
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream timed out"

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func mapDomainError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	c.JSON(status, gin.H{"error": msg})
}

func mapPageError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	c.HTML(status, "error.tmpl", gin.H{
		"Status":  status,
		"Message": msg,
	})
}
