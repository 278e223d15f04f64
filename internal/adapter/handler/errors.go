package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tgcloud/tgcloud/internal/domain/entities"
	"github.com/tgcloud/tgcloud/pkg/sharelink"
)

// abortWithError maps the error taxonomy onto HTTP statuses. A permission
// failure carries the remediation so the caller does not retry blindly.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := gin.H{"error": err.Error()}

	switch {
	case errors.Is(err, entities.ErrTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, entities.ErrNotFound), errors.Is(err, entities.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entities.ErrNeedsPermission):
		status = http.StatusForbidden
		body["remediation"] = "grant the bot permission to pin messages in the chat, then reconnect"
	case errors.Is(err, sharelink.ErrMalformed):
		status = http.StatusBadRequest
	case errors.Is(err, entities.ErrTransport):
		status = http.StatusBadGateway
	case errors.Is(err, entities.ErrSyncFailed):
		status = http.StatusBadGateway
	}

	c.JSON(status, body)
}
