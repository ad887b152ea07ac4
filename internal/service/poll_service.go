package service

import (
	"context"
	"encoding/json"
	"time"

	"household-sync-be/internal/dto"
	"household-sync-be/internal/entity"
	"household-sync-be/internal/pkg/logger"
	"household-sync-be/internal/repository/unitofwork"
	"household-sync-be/pkg/chorewatch"

	"github.com/google/uuid"
)

type IPollService interface {
	Subscribe(ctx context.Context, req *dto.PollTargetRequest) error
	Unsubscribe(ctx context.Context, req *dto.PollTargetRequest) error
	Run(ctx context.Context, req *dto.PollTargetRequest) *dto.PollRunResponse
	Reset(ctx context.Context, req *dto.PollTargetRequest) error
	EnqueueAll(ctx context.Context) (*dto.PollTriggerResponse, error)
}

type pollService struct {
	uowFactory       unitofwork.RepositoryFactory
	watcher          IChoreWatchService
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewPollService(
	uowFactory unitofwork.RepositoryFactory,
	watcher IChoreWatchService,
	publisherService IPublisherService,
	log logger.ILogger,
) IPollService {
	return &pollService{
		uowFactory:       uowFactory,
		watcher:          watcher,
		publisherService: publisherService,
		logger:           log,
	}
}

func toTarget(req *dto.PollTargetRequest) chorewatch.Target {
	return chorewatch.Target{GroupId: req.GroupId, DeviceId: req.DeviceId}
}

// Subscribe registers the pair for periodic polling and queues a first cycle
// so the baseline exists before the next tick.
func (s *pollService) Subscribe(ctx context.Context, req *dto.PollTargetRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub := entity.DeviceSubscription{
		Id:        uuid.New(),
		GroupId:   req.GroupId,
		DeviceId:  req.DeviceId,
		CreatedAt: time.Now(),
	}
	if err := uow.DeviceSubscriptionRepository().Create(ctx, &sub); err != nil {
		return err
	}

	if err := s.enqueue(ctx, toTarget(req)); err != nil {
		// The periodic tick will establish the baseline instead
		s.logger.Warn("PollService", "Failed to queue initial poll", map[string]interface{}{
			"error":     err.Error(),
			"device_id": req.DeviceId,
		})
	}
	return nil
}

func (s *pollService) Unsubscribe(ctx context.Context, req *dto.PollTargetRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DeviceSubscriptionRepository().Delete(ctx, req.GroupId, req.DeviceId)
}

// Run executes one cycle synchronously, without retries.
func (s *pollService) Run(ctx context.Context, req *dto.PollTargetRequest) *dto.PollRunResponse {
	result := s.watcher.RunCycle(ctx, toTarget(req))
	return &dto.PollRunResponse{Result: result.String()}
}

func (s *pollService) Reset(ctx context.Context, req *dto.PollTargetRequest) error {
	return s.watcher.Reset(ctx, toTarget(req))
}

// EnqueueAll queues one poll request per subscription. It backs both the
// periodic scheduler and the manual trigger endpoint.
func (s *pollService) EnqueueAll(ctx context.Context) (*dto.PollTriggerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subs, err := uow.DeviceSubscriptionRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	enqueued := 0
	for _, sub := range subs {
		target := chorewatch.Target{GroupId: sub.GroupId, DeviceId: sub.DeviceId}
		if err := s.enqueue(ctx, target); err != nil {
			s.logger.Error("PollService", "Failed to queue poll request", map[string]interface{}{
				"error":     err.Error(),
				"device_id": sub.DeviceId,
				"group_id":  sub.GroupId,
			})
			continue
		}
		enqueued++
	}

	s.logger.Info("PollService", "Poll requests queued", map[string]interface{}{
		"subscriptions": len(subs),
		"enqueued":      enqueued,
	})
	return &dto.PollTriggerResponse{Enqueued: enqueued}, nil
}

func (s *pollService) enqueue(ctx context.Context, target chorewatch.Target) error {
	msgJson, err := json.Marshal(dto.PublishPollRequestMessage{
		GroupId:  target.GroupId,
		DeviceId: target.DeviceId,
	})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, msgJson)
}
