package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/in"
)

const (
	contextUserKey        = "authUser"
	contextAccessTokenKey = "accessToken"
)

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

// optionalAuth кладет пользователя в контекст, если токен есть и валиден.
// Без токена запрос идет дальше анонимно
func optionalAuth(authUseCase in.AuthUseCase) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.Next()
			return
		}

		user, err := authUseCase.CurrentUser(ctx.Request.Context(), token)
		if err != nil {
			ctx.Next()
			return
		}

		ctx.Set(contextUserKey, user)
		ctx.Set(contextAccessTokenKey, token)
		ctx.Next()
	}
}

// requireAuth не пускает запрос без валидного токена
func requireAuth(authUseCase in.AuthUseCase) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			return
		}

		user, err := authUseCase.CurrentUser(ctx.Request.Context(), token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(contextUserKey, user)
		ctx.Set(contextAccessTokenKey, token)
		ctx.Next()
	}
}

func currentUser(ctx *gin.Context) *domain.User {
	value, exists := ctx.Get(contextUserKey)
	if !exists {
		return nil
	}

	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}

	return user
}
