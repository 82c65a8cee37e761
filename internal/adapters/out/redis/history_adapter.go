package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/suchimauz/healthchat-backend/internal/config"
	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

// Префикс ключа совместим с уже сохраненными переписками
const historyKeyPrefix = "chat_messages_"

type HistoryAdapter struct {
	client *redis.Client
	logger out.LoggerPort
}

func NewHistoryAdapter(cfg *config.Config, logger out.LoggerPort) (*HistoryAdapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis.connect: %w", err)
	}

	return &HistoryAdapter{
		client: client,
		logger: logger.WithModule("RedisHistoryAdapter"),
	}, nil
}

func (a *HistoryAdapter) GetMessages(ctx context.Context, userID string) ([]domain.ChatMessage, error) {
	key := historyKeyPrefix + userID

	raw, err := a.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return []domain.ChatMessage{}, nil
	}
	if err != nil {
		a.logger.Error("history.get.failed", out.LogFields{
			"key":   key,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("history.get: %w", err)
	}

	var messages []domain.ChatMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		// Битую запись не чиним, переписка начнется заново
		a.logger.Warn("history.get.corrupted", out.LogFields{
			"key":   key,
			"error": err.Error(),
		})
		return []domain.ChatMessage{}, nil
	}

	return messages, nil
}

func (a *HistoryAdapter) SaveMessages(ctx context.Context, userID string, messages []domain.ChatMessage) error {
	key := historyKeyPrefix + userID

	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("history.save.marshal: %w", err)
	}

	if err := a.client.Set(ctx, key, raw, 0).Err(); err != nil {
		a.logger.Error("history.save.failed", out.LogFields{
			"key":   key,
			"error": err.Error(),
		})
		return fmt.Errorf("history.save: %w", err)
	}

	return nil
}

func (a *HistoryAdapter) Close() error {
	return a.client.Close()
}
