package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/suchimauz/healthchat-backend/internal/config"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

const (
	// Таймаут ограничивает худшую задержку; по его истечении
	// вызывающий сервис уходит в заготовленный ответ
	requestTimeout = 15 * time.Second

	temperature = 0.7
	maxTokens   = 800
)

// headerTransport добавляет заголовки атрибуции OpenRouter к каждому запросу
type headerTransport struct {
	base      http.RoundTripper
	siteURL   string
	siteTitle string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.siteURL != "" {
		req.Header.Set("HTTP-Referer", t.siteURL)
	}
	if t.siteTitle != "" {
		req.Header.Set("X-Title", t.siteTitle)
	}
	return t.base.RoundTrip(req)
}

type OpenRouterAdapter struct {
	client *openai.Client
	model  string
	logger out.LoggerPort
}

func NewOpenRouterAdapter(cfg *config.Config, logger out.LoggerPort) *OpenRouterAdapter {
	clientConfig := openai.DefaultConfig(cfg.OpenRouter.APIKey)
	clientConfig.BaseURL = cfg.OpenRouter.URL
	clientConfig.HTTPClient = &http.Client{
		Timeout: requestTimeout,
		Transport: &headerTransport{
			base:      http.DefaultTransport,
			siteURL:   cfg.OpenRouter.SiteURL,
			siteTitle: cfg.OpenRouter.SiteTitle,
		},
	}

	return &OpenRouterAdapter{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.OpenRouter.Model,
		logger: logger,
	}
}

// Complete выполняет один запрос к chat-completions эндпоинту, без ретраев
func (a *OpenRouterAdapter) Complete(ctx context.Context, request out.CompletionRequest) (string, error) {
	a.logger.Info("openrouter.completion.request", out.LogFields{
		"model":  a.model,
		"length": len(request.UserText),
	})

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: request.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: request.UserText},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		a.logger.Error("openrouter.completion.request_failed", out.LogFields{
			"error": err.Error(),
		})
		return "", err
	}

	// Структурно валидный ответ обязан содержать хотя бы один вариант
	if len(resp.Choices) == 0 {
		a.logger.Error("openrouter.completion.empty_choices", out.LogFields{})
		return "", fmt.Errorf("completion response has no choices")
	}

	a.logger.Debug("openrouter.completion.success", out.LogFields{
		"length": len(resp.Choices[0].Message.Content),
	})

	return resp.Choices[0].Message.Content, nil
}
