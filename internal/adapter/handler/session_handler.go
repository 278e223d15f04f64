package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tgcloud/tgcloud/internal/usecase"
)

// SessionHandler exposes session setup: credential validation, chat
// discovery and connect/disconnect.
type SessionHandler struct {
	sessions *usecase.SessionUseCase
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *usecase.SessionUseCase) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// RegisterRoutes registers session routes on an authenticated group.
func (h *SessionHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/chats", h.DiscoverChats)
	api.POST("/sessions", h.Connect)
	api.GET("/sessions", h.List)
	api.DELETE("/sessions/:id", h.Disconnect)
}

type discoverChatsRequest struct {
	BotToken string `json:"bot_token" binding:"required"`
}

// DiscoverChats lists the chats reachable with a credential
// @Summary Discover chats for a bot token
// @Tags Sessions
// @Accept json
// @Produce json
// @Router /api/chats [post]
func (h *SessionHandler) DiscoverChats(c *gin.Context) {
	var req discoverChatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bot_token is required"})
		return
	}

	chats, err := h.sessions.DiscoverChats(c.Request.Context(), req.BotToken)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

type connectRequest struct {
	BotToken string `json:"bot_token" binding:"required"`
	ChatID   int64  `json:"chat_id" binding:"required"`
}

// Connect binds a credential to a chat and loads its index
// @Summary Create a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Router /api/sessions [post]
func (h *SessionHandler) Connect(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bot_token and chat_id are required"})
		return
	}

	session, err := h.sessions.Connect(c.Request.Context(), req.BotToken, req.ChatID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// List returns all persisted session bindings
// @Summary List sessions
// @Tags Sessions
// @Produce json
// @Router /api/sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.sessions.Sessions(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

// Disconnect removes a session binding
// @Summary Delete a session
// @Tags Sessions
// @Router /api/sessions/{id} [delete]
func (h *SessionHandler) Disconnect(c *gin.Context) {
	if err := h.sessions.Disconnect(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session disconnected"})
}
