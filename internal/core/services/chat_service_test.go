package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
)

func newTestChatService(completion *stubCompletion, history *memoryHistory) *ChatService {
	return NewChatService(completion, history, &nopLogger{})
}

func TestGenerateStripsMarkdown(t *testing.T) {
	service := newTestChatService(&stubCompletion{reply: "**Drink** *water* # daily"}, newMemoryHistory())

	got := service.Generate(context.Background(), "what should I drink?")
	if got != "Drink water  daily" {
		t.Fatalf("markdown not stripped, got %q", got)
	}
}

func TestGenerateFallbackOnError(t *testing.T) {
	service := newTestChatService(&stubCompletion{err: errors.New("connection refused")}, newMemoryHistory())

	got := service.Generate(context.Background(), "I have a fever")
	if !containsString(fallbackResponses[domain.LanguageEnglish], got) {
		t.Fatalf("expected an english fallback response, got %q", got)
	}
}

func TestGenerateFallbackMatchesDetectedLanguage(t *testing.T) {
	service := newTestChatService(&stubCompletion{err: errors.New("timeout")}, newMemoryHistory())

	got := service.Generate(context.Background(), "waxaan qabaa madax xanuun")
	if !containsString(fallbackResponses[domain.LanguageSomali], got) {
		t.Fatalf("expected a somali fallback response, got %q", got)
	}
}

func TestHistorySynthesizesGreeting(t *testing.T) {
	history := newMemoryHistory()
	service := newTestChatService(&stubCompletion{reply: "ok"}, history)

	messages, err := service.History(context.Background(), "user-1", "Amina")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected a single greeting, got %d messages", len(messages))
	}
	if messages[0].Sender != domain.MessageSenderBot {
		t.Fatalf("greeting must come from the bot, got %s", messages[0].Sender)
	}
	if !strings.Contains(messages[0].Text, "Hello Amina!") {
		t.Fatalf("greeting must address the user by name, got %q", messages[0].Text)
	}
	if !strings.Contains(messages[0].Text, "Salaan!") {
		t.Fatalf("greeting must contain the somali part, got %q", messages[0].Text)
	}

	// Приветствие сохраняется и не синтезируется повторно
	if len(history.store["user-1"]) != 1 {
		t.Fatalf("greeting must be persisted")
	}
}

func TestHistoryGreetingDefaultName(t *testing.T) {
	service := newTestChatService(&stubCompletion{reply: "ok"}, newMemoryHistory())

	messages, err := service.History(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(messages[0].Text, "Hello there!") {
		t.Fatalf("anonymous greeting must address 'there', got %q", messages[0].Text)
	}
}

func TestSendMessageAppendsBothMessages(t *testing.T) {
	history := newMemoryHistory()
	service := newTestChatService(&stubCompletion{reply: "Drink plenty of water."}, history)

	bot, err := service.SendMessage(context.Background(), "user-1", "Amina", "what helps with a cold?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bot.Sender != domain.MessageSenderBot {
		t.Fatalf("reply must come from the bot")
	}
	if bot.Text != "Drink plenty of water." {
		t.Fatalf("unexpected reply: %q", bot.Text)
	}

	// Приветствие + реплика пользователя + ответ бота
	saved := history.store["user-1"]
	if len(saved) != 3 {
		t.Fatalf("expected 3 messages in history, got %d", len(saved))
	}
	if saved[1].Sender != domain.MessageSenderUser || saved[1].Text != "what helps with a cold?" {
		t.Fatalf("user message not persisted correctly: %+v", saved[1])
	}
	if saved[2].Text != bot.Text {
		t.Fatalf("bot message not persisted correctly: %+v", saved[2])
	}
}

func TestSendMessageAnonymousSharedKey(t *testing.T) {
	history := newMemoryHistory()
	service := newTestChatService(&stubCompletion{reply: "ok"}, history)

	if _, err := service.SendMessage(context.Background(), "", "", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, exists := history.store["anonymous"]; !exists {
		t.Fatalf("anonymous conversation must be stored under the shared key")
	}
}

func TestClearHistoryResetsToGreeting(t *testing.T) {
	history := newMemoryHistory()
	service := newTestChatService(&stubCompletion{reply: "ok"}, history)

	if _, err := service.SendMessage(context.Background(), "user-1", "Amina", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	greeting, err := service.ClearHistory(context.Background(), "user-1", "Amina")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if greeting.Sender != domain.MessageSenderBot {
		t.Fatalf("greeting must come from the bot")
	}

	saved := history.store["user-1"]
	if len(saved) != 1 {
		t.Fatalf("history must be reset to a single greeting, got %d messages", len(saved))
	}
	if saved[0].Text != greeting.Text {
		t.Fatalf("persisted greeting differs from the returned one")
	}
}
