package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/in"
)

type ChatController struct {
	chatUseCase in.ChatUseCase
	authUseCase in.AuthUseCase
}

func NewChatController(chatUseCase in.ChatUseCase, authUseCase in.AuthUseCase) *ChatController {
	return &ChatController{
		chatUseCase: chatUseCase,
		authUseCase: authUseCase,
	}
}

// Чат доступен и без входа: анонимные переписки
// хранятся под общим ключом
func (c *ChatController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/chat")
	api.Use(optionalAuth(c.authUseCase))
	{
		api.POST("/messages", c.sendMessage)
		api.GET("/history", c.history)
		api.DELETE("/history", c.clearHistory)
	}
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

func (c *ChatController) sendMessage(ctx *gin.Context) {
	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	userID, displayName := c.identity(ctx)

	message, err := c.chatUseCase.SendMessage(ctx.Request.Context(), userID, displayName, req.Text)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message. Please try again."})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

func (c *ChatController) history(ctx *gin.Context) {
	userID, displayName := c.identity(ctx)

	messages, err := c.chatUseCase.History(ctx.Request.Context(), userID, displayName)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chat history. Please try again."})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (c *ChatController) clearHistory(ctx *gin.Context) {
	userID, displayName := c.identity(ctx)

	greeting, err := c.chatUseCase.ClearHistory(ctx.Request.Context(), userID, displayName)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear chat history. Please try again."})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": []interface{}{greeting}})
}

func (c *ChatController) identity(ctx *gin.Context) (string, string) {
	user := currentUser(ctx)
	if user == nil {
		return "", ""
	}
	return user.UID, user.DisplayName
}
