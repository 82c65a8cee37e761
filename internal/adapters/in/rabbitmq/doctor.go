package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

func (l *CacheHitListener) startDoctorQueue(ctx context.Context) error {
	return l.consumeQueue(
		ctx,
		l.cfg.RabbitMq.QueueConfig.DoctorQueueName,
		l.cfg.RabbitMq.QueueConfig.DoctorQueueBind,
		l.cfg.RabbitMq.QueueConfig.DoctorQueueExchange,
		l.processDoctorMessage,
	)
}

func (l *CacheHitListener) processDoctorMessage(ctx context.Context, msg amqp.Delivery) error {
	cacheMessageRoutingKey, err := l.parseCacheMessageRoutingKey(ctx, msg)
	if err != nil {
		return err
	}

	if cacheMessageRoutingKey.ResourceType != CacheHitResourceTypeDoctor {
		return nil
	}

	l.logger.Info("doctor.message.received", out.LogFields{
		"msgString": string(msg.Body),
	})

	// Список врачей кэшируется целиком, сбрасываем весь кэш
	go l.useCase.InvalidateDoctorsCache(ctx)

	l.logger.Info("doctor.message.invalidated", out.LogFields{})

	return nil
}
