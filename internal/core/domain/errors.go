package domain

import (
	"errors"
	"fmt"
)

// ErrSlotUnavailable — запрошенный слот не совпадает ни с одним
// из сгенерированных на выбранную дату
var ErrSlotUnavailable = errors.New("slot is not available")

type AuthErrorCode string

// Коды ошибок провайдера аутентификации, для которых есть
// отдельные сообщения пользователю. Все остальные коды
// сводятся к общему сообщению
const (
	AuthErrorUserNotFound      AuthErrorCode = "user-not-found"
	AuthErrorWrongPassword     AuthErrorCode = "wrong-password"
	AuthErrorInvalidCredential AuthErrorCode = "invalid-credential"
	AuthErrorEmailAlreadyInUse AuthErrorCode = "email-already-in-use"
	AuthErrorInvalidEmail      AuthErrorCode = "invalid-email"
	AuthErrorWeakPassword      AuthErrorCode = "weak-password"
	AuthErrorUnknown           AuthErrorCode = "unknown"
)

type AuthError struct {
	Code AuthErrorCode
	Err  error
}

func NewAuthError(code AuthErrorCode, err error) *AuthError {
	return &AuthError{Code: code, Err: err}
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("auth error %s", e.Code)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// UserMessage — короткое сообщение для пользователя по коду ошибки
func (e *AuthError) UserMessage() string {
	switch e.Code {
	case AuthErrorUserNotFound:
		return "No account found with this email"
	case AuthErrorWrongPassword:
		return "Incorrect password"
	case AuthErrorInvalidCredential:
		return "Invalid email or password"
	case AuthErrorEmailAlreadyInUse:
		return "An account with this email already exists"
	case AuthErrorInvalidEmail:
		return "Invalid email address"
	case AuthErrorWeakPassword:
		return "Password is too weak"
	default:
		return "An error occurred. Please try again."
	}
}
