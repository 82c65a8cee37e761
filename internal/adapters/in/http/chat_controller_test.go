package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
)

func TestSendMessageAnonymous(t *testing.T) {
	router := newTestRouter(&stubAuthUseCase{}, &stubChatUseCase{}, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodPost, "/api/v1/chat/messages",
		`{"text":"I have a headache"}`, "")

	if recorder.Code != http.StatusOK {
		t.Fatalf("anonymous chat must be allowed, got %d", recorder.Code)
	}

	var body struct {
		Message domain.ChatMessage `json:"message"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message.Sender != domain.MessageSenderBot {
		t.Fatalf("reply must come from the bot, got %s", body.Message.Sender)
	}
}

func TestSendMessageEmptyText(t *testing.T) {
	router := newTestRouter(&stubAuthUseCase{}, &stubChatUseCase{}, &stubBookingUseCase{})

	for _, body := range []string{`{}`, `{"text":"   "}`} {
		recorder := performRequest(router, http.MethodPost, "/api/v1/chat/messages", body, "")
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("empty text must be rejected, got %d for body %s", recorder.Code, body)
		}
	}
}

func TestSendMessageInvalidTokenStillAnonymous(t *testing.T) {
	router := newTestRouter(&stubAuthUseCase{}, &stubChatUseCase{}, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodPost, "/api/v1/chat/messages",
		`{"text":"hello"}`, "expired-token")

	if recorder.Code != http.StatusOK {
		t.Fatalf("invalid token must degrade to anonymous chat, got %d", recorder.Code)
	}
}

func TestHistory(t *testing.T) {
	router := newTestRouter(&stubAuthUseCase{}, &stubChatUseCase{}, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodGet, "/api/v1/chat/history", "", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var body struct {
		Messages []domain.ChatMessage `json:"messages"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Messages) != 1 {
		t.Fatalf("expected the greeting, got %d messages", len(body.Messages))
	}
}

func TestClearHistory(t *testing.T) {
	router := newTestRouter(&stubAuthUseCase{}, &stubChatUseCase{}, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodDelete, "/api/v1/chat/history", "", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
}

func TestChatGenericErrorMessage(t *testing.T) {
	chat := &stubChatUseCase{err: errors.New("redis: connection refused")}
	router := newTestRouter(&stubAuthUseCase{}, chat, &stubBookingUseCase{})

	recorder := performRequest(router, http.MethodGet, "/api/v1/chat/history", "", "")
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// Внутренние детали ошибки наружу не выходят
	if body["error"] != "Failed to load chat history. Please try again." {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}
