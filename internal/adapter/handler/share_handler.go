package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tgcloud/tgcloud/internal/usecase"
)

// ShareHandler redeems share tokens. Tokens are self-contained, so this
// surface is public: recipients have no session and no API key.
type ShareHandler struct {
	sessions *usecase.SessionUseCase
}

// NewShareHandler creates a new share handler
func NewShareHandler(sessions *usecase.SessionUseCase) *ShareHandler {
	return &ShareHandler{sessions: sessions}
}

// RegisterRoutes registers the public share route.
func (h *ShareHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/share/:token", h.Redeem)
}

// Redeem downloads the file a share token points at
// @Summary Redeem a share token
// @Tags Shares
// @Produce octet-stream
// @Router /share/{token} [get]
func (h *ShareHandler) Redeem(c *gin.Context) {
	data, record, err := h.sessions.Redeem(c.Request.Context(), c.Param("token"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.Name))
	c.Data(http.StatusOK, "application/octet-stream", data)
}
