package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

func (a *FirebaseAdapter) RegisterUser(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	a.logger.Info("firebase.auth.register", out.LogFields{
		"email": email,
	})

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := a.authClient.CreateUser(ctx, params)
	if err != nil {
		a.logger.Warn("firebase.auth.register_failed", out.LogFields{
			"email": email,
			"error": err.Error(),
		})
		return nil, mapFirebaseError(err)
	}

	a.logger.Info("firebase.auth.register_success", out.LogFields{
		"uid": record.UID,
	})

	return &domain.User{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		PhotoURL:    record.PhotoURL,
	}, nil
}

// signInResponse — ответ Identity Toolkit REST API, Admin SDK не умеет
// проверять пароль, поэтому вход идет через REST
type signInResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

type signInError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (a *FirebaseAdapter) LoginUser(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	a.logger.Info("firebase.auth.login", out.LogFields{
		"email": email,
	})

	payload, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s?key=%s", identityToolkitURL, a.webAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewAuthError(domain.AuthErrorUnknown, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var parsed signInError
		_ = json.Unmarshal(body, &parsed)

		a.logger.Warn("firebase.auth.login_failed", out.LogFields{
			"email":  email,
			"status": resp.StatusCode,
			"code":   parsed.Error.Message,
		})

		return nil, mapSignInError(parsed.Error.Message)
	}

	var signIn signInResponse
	if err := json.Unmarshal(body, &signIn); err != nil {
		return nil, err
	}

	a.logger.Info("firebase.auth.login_success", out.LogFields{
		"uid": signIn.LocalID,
	})

	return &domain.AuthSession{
		User: domain.User{
			UID:         signIn.LocalID,
			Email:       signIn.Email,
			DisplayName: signIn.DisplayName,
		},
		AccessToken: signIn.IDToken,
	}, nil
}

func (a *FirebaseAdapter) LogoutUser(ctx context.Context, accessToken string) error {
	token, err := a.authClient.VerifyIDToken(ctx, accessToken)
	if err != nil {
		return domain.NewAuthError(domain.AuthErrorInvalidCredential, err)
	}

	if err := a.authClient.RevokeRefreshTokens(ctx, token.UID); err != nil {
		a.logger.Warn("firebase.auth.logout_failed", out.LogFields{
			"uid":   token.UID,
			"error": err.Error(),
		})
		return err
	}

	return nil
}

func (a *FirebaseAdapter) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	token, err := a.authClient.VerifyIDToken(ctx, accessToken)
	if err != nil {
		return nil, domain.NewAuthError(domain.AuthErrorInvalidCredential, err)
	}

	record, err := a.authClient.GetUser(ctx, token.UID)
	if err != nil {
		return nil, mapFirebaseError(err)
	}

	return &domain.User{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		PhotoURL:    record.PhotoURL,
	}, nil
}

// mapSignInError сводит коды Identity Toolkit к доменным ошибкам
func mapSignInError(code string) error {
	baseErr := fmt.Errorf("identitytoolkit: %s", code)

	switch {
	case code == "EMAIL_NOT_FOUND":
		return domain.NewAuthError(domain.AuthErrorUserNotFound, baseErr)
	case code == "INVALID_PASSWORD":
		return domain.NewAuthError(domain.AuthErrorWrongPassword, baseErr)
	case code == "INVALID_LOGIN_CREDENTIALS":
		return domain.NewAuthError(domain.AuthErrorInvalidCredential, baseErr)
	case code == "INVALID_EMAIL":
		return domain.NewAuthError(domain.AuthErrorInvalidEmail, baseErr)
	case strings.HasPrefix(code, "WEAK_PASSWORD"):
		return domain.NewAuthError(domain.AuthErrorWeakPassword, baseErr)
	default:
		return domain.NewAuthError(domain.AuthErrorUnknown, baseErr)
	}
}

// mapFirebaseError сводит ошибки Admin SDK к доменным ошибкам
func mapFirebaseError(err error) error {
	switch {
	case auth.IsEmailAlreadyExists(err):
		return domain.NewAuthError(domain.AuthErrorEmailAlreadyInUse, err)
	case auth.IsUserNotFound(err):
		return domain.NewAuthError(domain.AuthErrorUserNotFound, err)
	default:
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "password") {
			return domain.NewAuthError(domain.AuthErrorWeakPassword, err)
		}
		if strings.Contains(msg, "email") {
			return domain.NewAuthError(domain.AuthErrorInvalidEmail, err)
		}
		return domain.NewAuthError(domain.AuthErrorUnknown, err)
	}
}
