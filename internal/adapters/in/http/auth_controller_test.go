package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
)

func TestRegisterSuccess(t *testing.T) {
	router := newTestRouter(&stubAuthUseCase{}, &stubChatUseCase{}, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"amina@example.com","password":"secret123","displayName":"Amina"}`, "")

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestRegisterMissingFields(t *testing.T) {
	router := newTestRouter(&stubAuthUseCase{}, &stubChatUseCase{}, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"amina@example.com"}`, "")

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestLoginReturnsSession(t *testing.T) {
	router := newTestRouter(&stubAuthUseCase{}, &stubChatUseCase{}, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"amina@example.com","password":"secret123"}`, "")

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var session domain.AuthSession
	if err := json.Unmarshal(recorder.Body.Bytes(), &session); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if session.AccessToken != validToken {
		t.Fatalf("unexpected access token: %s", session.AccessToken)
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	auth := &stubAuthUseCase{
		loginErr: domain.NewAuthError(domain.AuthErrorInvalidCredential, nil),
	}
	router := newTestRouter(auth, &stubChatUseCase{}, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"amina@example.com","password":"wrong"}`, "")

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] != "Invalid email or password" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}

func TestRegisterEmailAlreadyInUse(t *testing.T) {
	auth := &stubAuthUseCase{
		loginErr: domain.NewAuthError(domain.AuthErrorEmailAlreadyInUse, nil),
	}
	router := newTestRouter(auth, &stubChatUseCase{}, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"amina@example.com","password":"secret123","displayName":"Amina"}`, "")

	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}
}

func TestMeRequiresToken(t *testing.T) {
	auth := &stubAuthUseCase{user: &domain.User{UID: "uid-1", DisplayName: "Amina"}}
	router := newTestRouter(auth, &stubChatUseCase{}, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodGet, "/api/v1/auth/me", "", "")
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", recorder.Code)
	}

	recorder = performRequest(router, http.MethodGet, "/api/v1/auth/me", "", validToken)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", recorder.Code)
	}
}

func TestLogout(t *testing.T) {
	auth := &stubAuthUseCase{user: &domain.User{UID: "uid-1"}}
	router := newTestRouter(auth, &stubChatUseCase{}, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodPost, "/api/v1/auth/logout", "", validToken)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
}
