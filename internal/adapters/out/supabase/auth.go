package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

type gotrueUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
		PhotoURL string `json:"photo_url"`
	} `json:"user_metadata"`
}

type gotrueSession struct {
	AccessToken string     `json:"access_token"`
	User        gotrueUser `json:"user"`
}

func (u *gotrueUser) toDomain() *domain.User {
	return &domain.User{
		UID:         u.ID,
		Email:       u.Email,
		DisplayName: u.UserMetadata.FullName,
		PhotoURL:    u.UserMetadata.PhotoURL,
	}
}

func (a *SupabaseAdapter) RegisterUser(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	a.logger.Info("supabase.auth.register", out.LogFields{
		"email": email,
	})

	payload, err := json.Marshal(map[string]interface{}{
		"email":    email,
		"password": password,
		"data": map[string]string{
			"full_name": displayName,
		},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/auth/v1/signup", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	a.setHeaders(req, "")

	body, err := a.do(req, http.StatusOK)
	if err != nil {
		a.logger.Warn("supabase.auth.register_failed", out.LogFields{
			"email": email,
			"error": err.Error(),
		})
		return nil, a.mapAuthError(err, body)
	}

	var user gotrueUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, err
	}

	a.logger.Info("supabase.auth.register_success", out.LogFields{
		"uid": user.ID,
	})

	return user.toDomain(), nil
}

func (a *SupabaseAdapter) LoginUser(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	a.logger.Info("supabase.auth.login", out.LogFields{
		"email": email,
	})

	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/auth/v1/token?grant_type=password", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	a.setHeaders(req, "")

	body, err := a.do(req, http.StatusOK)
	if err != nil {
		a.logger.Warn("supabase.auth.login_failed", out.LogFields{
			"email": email,
			"error": err.Error(),
		})
		return nil, a.mapAuthError(err, body)
	}

	var session gotrueSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, err
	}

	a.logger.Info("supabase.auth.login_success", out.LogFields{
		"uid": session.User.ID,
	})

	return &domain.AuthSession{
		User:        *session.User.toDomain(),
		AccessToken: session.AccessToken,
	}, nil
}

func (a *SupabaseAdapter) LogoutUser(ctx context.Context, accessToken string) error {
	url := fmt.Sprintf("%s/auth/v1/logout", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	a.setHeaders(req, accessToken)

	if _, err := a.do(req, http.StatusNoContent); err != nil {
		a.logger.Warn("supabase.auth.logout_failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}

	return nil
}

// tokenClaims — интересующая нас часть полезной нагрузки access token
type tokenClaims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
		PhotoURL string `json:"photo_url"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// CurrentUser проверяет access token локально по JWT-секрету проекта,
// без похода в GoTrue на каждый запрос
func (a *SupabaseAdapter) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	claims := &tokenClaims{}

	_, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, domain.NewAuthError(domain.AuthErrorInvalidCredential, err)
	}

	if claims.Subject == "" {
		return nil, domain.NewAuthError(domain.AuthErrorInvalidCredential, fmt.Errorf("token has no subject"))
	}

	return &domain.User{
		UID:         claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.UserMetadata.FullName,
		PhotoURL:    claims.UserMetadata.PhotoURL,
	}, nil
}

// mapAuthError сводит ответы GoTrue к кодам ошибок доменного слоя
func (a *SupabaseAdapter) mapAuthError(err error, body []byte) error {
	var statusErr *httpStatusError
	if !errors.As(err, &statusErr) {
		return domain.NewAuthError(domain.AuthErrorUnknown, err)
	}

	parsed := parseErrorBody(body)
	text := strings.ToLower(parsed.text())

	switch {
	case parsed.ErrorCode == "user_already_exists",
		strings.Contains(text, "already registered"):
		return domain.NewAuthError(domain.AuthErrorEmailAlreadyInUse, err)
	case parsed.ErrorCode == "weak_password",
		strings.Contains(text, "password should be at least"):
		return domain.NewAuthError(domain.AuthErrorWeakPassword, err)
	case parsed.ErrorCode == "validation_failed",
		strings.Contains(text, "invalid format"),
		strings.Contains(text, "invalid email"):
		return domain.NewAuthError(domain.AuthErrorInvalidEmail, err)
	case parsed.Error == "invalid_grant",
		parsed.ErrorCode == "invalid_credentials",
		strings.Contains(text, "invalid login credentials"):
		return domain.NewAuthError(domain.AuthErrorInvalidCredential, err)
	default:
		return domain.NewAuthError(domain.AuthErrorUnknown, err)
	}
}
