package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

const (
	// Ключ истории для неавторизованных пользователей
	anonymousUserKey = "anonymous"

	systemPromptEnglish = "You are a knowledgeable healthcare assistant. Provide helpful medical information while always reminding users to consult healthcare professionals for specific medical advice. Keep responses concise and avoid using markdown formatting like asterisks for emphasis. If the user asks in Somali, respond in Somali language."
	systemPromptSomali  = "Waxaad tahay kaalmiye caafimaad oo aqoon leh. Bixinta macluumaadka caafimaadka ee faa'iido leh marwalba xasuusinta isticmaalayaasha inay la tashadaan xirfadlayaasha daryeelka caafimaadka si ay u helaan talo caafimaad oo gaar ah. Ka jawaab su'aalaha luqadda Soomaaliga ah sida ugu macquulsan. Ku hay jawaabaha kooban oo ka fogee astaamaha qoraalkii markdown sida xiddigaha xoogga saarista."

	// Двуязычное приветствие, с него начинается каждая новая переписка
	greetingTemplate = "Hello %s! I'm your healthcare assistant. How can I help you today?\n\nSalaan! Waxaan ahay caawiyahaaga daryeelka caafimaadka. Sideen kugu caawin karaa maanta?"
)

type ChatService struct {
	completionPort out.CompletionPort
	historyPort    out.HistoryPort
	logger         out.LoggerPort
}

func NewChatService(
	completionPort out.CompletionPort,
	historyPort out.HistoryPort,
	logger out.LoggerPort,
) *ChatService {
	return &ChatService{
		completionPort: completionPort,
		historyPort:    historyPort,
		logger:         logger.WithModule("ChatService"),
	}
}

// Generate выполняет один запрос к модели и возвращает очищенный текст.
// Ошибок наружу не отдает: любой сбой — сеть, таймаут, не-2xx, пустой
// список choices — превращается в заготовленный ответ на языке запроса,
// пользователь никогда не видит сырую ошибку
func (s *ChatService) Generate(ctx context.Context, text string) string {
	language := DetectLanguage(text)

	systemPrompt := systemPromptEnglish
	if language == domain.LanguageSomali {
		systemPrompt = systemPromptSomali
	}

	reply, err := s.completionPort.Complete(ctx, out.CompletionRequest{
		SystemPrompt: systemPrompt,
		UserText:     text,
	})
	if err != nil {
		s.logger.Warn("chat.generate.fallback", out.LogFields{
			"language": language,
			"error":    err.Error(),
		})
		return FallbackResponse(language)
	}

	return stripMarkdown(reply)
}

// stripMarkdown убирает из ответа модели маркеры выделения и заголовков
func stripMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	text = strings.ReplaceAll(text, "#", "")
	return text
}

func historyKey(userID string) string {
	if userID == "" {
		return anonymousUserKey
	}
	return userID
}

func (s *ChatService) greeting(displayName string) domain.ChatMessage {
	if displayName == "" {
		displayName = "there"
	}

	return domain.ChatMessage{
		Text:      fmt.Sprintf(greetingTemplate, displayName),
		Sender:    domain.MessageSenderBot,
		Timestamp: time.Now(),
	}
}

// History возвращает переписку пользователя.
// Для пустой истории синтезируется и сохраняется приветствие
func (s *ChatService) History(ctx context.Context, userID, displayName string) ([]domain.ChatMessage, error) {
	key := historyKey(userID)

	messages, err := s.historyPort.GetMessages(ctx, key)
	if err != nil {
		s.logger.Error("chat.history.load_failed", out.LogFields{
			"userId": key,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("chat.history.load_failed: %w", err)
	}

	if len(messages) == 0 {
		messages = []domain.ChatMessage{s.greeting(displayName)}
		if err := s.historyPort.SaveMessages(ctx, key, messages); err != nil {
			return nil, fmt.Errorf("chat.history.save_failed: %w", err)
		}
	}

	return messages, nil
}

// SendMessage дописывает реплику пользователя и ответ бота в переписку.
// История сохраняется после каждой мутации
func (s *ChatService) SendMessage(ctx context.Context, userID, displayName, text string) (domain.ChatMessage, error) {
	key := historyKey(userID)

	s.logger.Info("chat.message.received", out.LogFields{
		"userId": key,
		"length": len(text),
	})

	messages, err := s.History(ctx, userID, displayName)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	userMessage := domain.ChatMessage{
		Text:      text,
		Sender:    domain.MessageSenderUser,
		Timestamp: time.Now(),
	}
	messages = append(messages, userMessage)

	if err := s.historyPort.SaveMessages(ctx, key, messages); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("chat.history.save_failed: %w", err)
	}

	botMessage := domain.ChatMessage{
		Text:      s.Generate(ctx, text),
		Sender:    domain.MessageSenderBot,
		Timestamp: time.Now(),
	}
	messages = append(messages, botMessage)

	if err := s.historyPort.SaveMessages(ctx, key, messages); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("chat.history.save_failed: %w", err)
	}

	return botMessage, nil
}

// ClearHistory сбрасывает переписку до одного приветственного сообщения
// со свежей меткой времени
func (s *ChatService) ClearHistory(ctx context.Context, userID, displayName string) (domain.ChatMessage, error) {
	key := historyKey(userID)

	greeting := s.greeting(displayName)
	if err := s.historyPort.SaveMessages(ctx, key, []domain.ChatMessage{greeting}); err != nil {
		s.logger.Error("chat.history.clear_failed", out.LogFields{
			"userId": key,
			"error":  err.Error(),
		})
		return domain.ChatMessage{}, fmt.Errorf("chat.history.clear_failed: %w", err)
	}

	s.logger.Info("chat.history.cleared", out.LogFields{
		"userId": key,
	})

	return greeting, nil
}
