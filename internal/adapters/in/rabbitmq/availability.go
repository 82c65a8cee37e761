package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

type CacheAvailabilityMessage struct {
	DoctorID string `json:"doctor_id"`
}

func (l *CacheHitListener) startAvailabilityQueue(ctx context.Context) error {
	return l.consumeQueue(
		ctx,
		l.cfg.RabbitMq.QueueConfig.AvailabilityQueueName,
		l.cfg.RabbitMq.QueueConfig.AvailabilityQueueBind,
		l.cfg.RabbitMq.QueueConfig.AvailabilityQueueExchange,
		l.processAvailabilityMessage,
	)
}

func (l *CacheHitListener) processAvailabilityMessage(ctx context.Context, msg amqp.Delivery) error {
	cacheMessageRoutingKey, err := l.parseCacheMessageRoutingKey(ctx, msg)
	if err != nil {
		return err
	}

	if cacheMessageRoutingKey.ResourceType != CacheHitResourceTypeAvailability {
		return nil
	}

	var msgJson CacheAvailabilityMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	l.logger.Info("availability.message.received", out.LogFields{
		"msgString": string(msg.Body),
	})

	// На любое изменение окон приема кэш врача сбрасывается,
	// свежие окна подтянутся при следующем запросе
	if cacheMessageRoutingKey.CacheHitType == CacheHitTypeInvalidate ||
		cacheMessageRoutingKey.CacheHitType == CacheHitTypeStore {
		go l.useCase.InvalidateAvailabilityCache(ctx, msgJson.DoctorID)

		l.logger.Info("availability.message.invalidated", out.LogFields{
			"doctor_id": msgJson.DoctorID,
		})
	}

	return nil
}
