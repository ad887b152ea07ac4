package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"household-sync-be/internal/dto"
	"household-sync-be/internal/pkg/logger"
	"household-sync-be/pkg/chorewatch"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cenkalti/backoff/v5"
)

var errCycleRetry = errors.New("poll cycle asked for retry")

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	watcher     IChoreWatchService
	retryBudget time.Duration
	newBackOff  func() backoff.BackOff
	logger      logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	watcher IChoreWatchService,
	retryBudget time.Duration,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		watcher:     watcher,
		retryBudget: retryBudget,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
		logger: log,
	}
}

// Consume handles poll requests one at a time until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// The request is always acked; a cycle that runs out of retries is picked
	// up again by the next periodic tick.
	defer msg.Ack()

	var payload dto.PublishPollRequestMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal poll request", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		return
	}

	target := chorewatch.Target{GroupId: payload.GroupId, DeviceId: payload.DeviceId}
	attempts := 0

	operation := func() (chorewatch.Result, error) {
		attempts++
		res := cs.watcher.RunCycle(ctx, target)
		if res == chorewatch.ResultRetry {
			return res, errCycleRetry
		}
		return res, nil
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(cs.newBackOff()),
		backoff.WithMaxElapsedTime(cs.retryBudget),
	)
	if err != nil {
		cs.logger.Warn("ConsumerService", "Poll request gave up, waiting for next tick", map[string]interface{}{
			"error":     err.Error(),
			"attempts":  attempts,
			"device_id": target.DeviceId,
			"group_id":  target.GroupId,
		})
		return
	}

	cs.logger.Debug("ConsumerService", "Poll request processed", map[string]interface{}{
		"attempts":  attempts,
		"device_id": target.DeviceId,
	})
}
