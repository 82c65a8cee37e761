package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/in"
)

type AuthController struct {
	authUseCase in.AuthUseCase
}

func NewAuthController(authUseCase in.AuthUseCase) *AuthController {
	return &AuthController{authUseCase: authUseCase}
}

func (c *AuthController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/auth")
	{
		api.POST("/register", c.register)
		api.POST("/login", c.login)
		api.POST("/logout", requireAuth(c.authUseCase), c.logout)
		api.GET("/me", requireAuth(c.authUseCase), c.me)
	}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (c *AuthController) register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.authUseCase.Register(ctx.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		status, message := authErrorResponse(err)
		ctx.JSON(status, gin.H{"error": message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": user})
}

func (c *AuthController) login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := c.authUseCase.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, message := authErrorResponse(err)
		ctx.JSON(status, gin.H{"error": message})
		return
	}

	ctx.JSON(http.StatusOK, session)
}

func (c *AuthController) logout(ctx *gin.Context) {
	token := ctx.GetString(contextAccessTokenKey)

	if err := c.authUseCase.Logout(ctx.Request.Context(), token); err != nil {
		status, message := authErrorResponse(err)
		ctx.JSON(status, gin.H{"error": message})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *AuthController) me(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"user": currentUser(ctx)})
}

// authErrorResponse подбирает HTTP-статус и сообщение по коду доменной ошибки
func authErrorResponse(err error) (int, string) {
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		return http.StatusInternalServerError, "An error occurred. Please try again."
	}

	switch authErr.Code {
	case domain.AuthErrorUserNotFound,
		domain.AuthErrorWrongPassword,
		domain.AuthErrorInvalidCredential:
		return http.StatusUnauthorized, authErr.UserMessage()
	case domain.AuthErrorEmailAlreadyInUse:
		return http.StatusConflict, authErr.UserMessage()
	case domain.AuthErrorInvalidEmail,
		domain.AuthErrorWeakPassword:
		return http.StatusBadRequest, authErr.UserMessage()
	default:
		return http.StatusInternalServerError, authErr.UserMessage()
	}
}
