package service

import (
	"context"
	"fmt"

	"household-sync-be/internal/pkg/logger"
	"household-sync-be/internal/repository/contract"
	"household-sync-be/pkg/chorewatch"
	"household-sync-be/pkg/keylock"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const choreWatchModule = "ChoreWatchService"

// GroupFetcher loads the current state of a group from the group backend.
type GroupFetcher interface {
	Fetch(ctx context.Context, groupId string) (*chorewatch.Snapshot, error)
}

// NotificationDispatcher hands a detected change to whatever informs the user.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, target chorewatch.Target, evt chorewatch.Event) error
}

type IChoreWatchService interface {
	RunCycle(ctx context.Context, target chorewatch.Target) chorewatch.Result
	Reset(ctx context.Context, target chorewatch.Target) error
}

type choreWatchService struct {
	fetcher    GroupFetcher
	states     contract.ObservedStateRepository
	locker     keylock.Locker
	dispatcher NotificationDispatcher
	logger     logger.ILogger
}

func NewChoreWatchService(
	fetcher GroupFetcher,
	states contract.ObservedStateRepository,
	locker keylock.Locker,
	dispatcher NotificationDispatcher,
	log logger.ILogger,
) IChoreWatchService {
	return &choreWatchService{
		fetcher:    fetcher,
		states:     states,
		locker:     locker,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// RunCycle performs one fetch-diff-commit-notify round for a device/group
// pair. Cycles for the same pair run one at a time; the baseline is only
// written when the whole round got that far without error or cancellation.
func (s *choreWatchService) RunCycle(ctx context.Context, target chorewatch.Target) (result chorewatch.Result) {
	if !target.Valid() {
		s.logger.Debug(choreWatchModule, "Device has not joined a group, skipping poll", map[string]interface{}{
			"group_id":  target.GroupId,
			"device_id": target.DeviceId,
		})
		return chorewatch.ResultSuccess
	}

	ctx, span := otel.Tracer("chorewatch").Start(ctx, "chorewatch.RunCycle")
	span.SetAttributes(
		attribute.String("group_id", target.GroupId),
		attribute.String("device_id", target.DeviceId),
	)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(choreWatchModule, "Poll cycle panicked", map[string]interface{}{
				"error":     fmt.Sprint(r),
				"device_id": target.DeviceId,
				"group_id":  target.GroupId,
			})
			span.SetStatus(codes.Error, "panic")
			result = chorewatch.ResultRetry
		}
	}()

	evts, err := s.commit(ctx, target)
	if err != nil {
		s.logger.Warn(choreWatchModule, "Poll cycle failed, will retry", map[string]interface{}{
			"error":     err.Error(),
			"device_id": target.DeviceId,
			"group_id":  target.GroupId,
		})
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return chorewatch.ResultRetry
	}

	for _, evt := range evts {
		s.dispatch(ctx, target, evt)
	}

	span.SetAttributes(attribute.Int("events", len(evts)))
	return chorewatch.ResultSuccess
}

// dispatch hands one event to the dispatcher. The baseline is already
// committed, so neither an error nor a panic fails the cycle and a lost
// notification is not retried.
func (s *choreWatchService) dispatch(ctx context.Context, target chorewatch.Target, evt chorewatch.Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(choreWatchModule, "Notification dispatch panicked", map[string]interface{}{
				"error":     fmt.Sprint(r),
				"kind":      evt.Kind,
				"device_id": target.DeviceId,
			})
		}
	}()

	if err := s.dispatcher.Dispatch(ctx, target, evt); err != nil {
		s.logger.Warn(choreWatchModule, "Failed to dispatch notification", map[string]interface{}{
			"error":     err.Error(),
			"kind":      evt.Kind,
			"device_id": target.DeviceId,
		})
	}
}

// commit runs steps fetch → read → diff → write under the pair's lock and
// returns the events to dispatch.
func (s *choreWatchService) commit(ctx context.Context, target chorewatch.Target) ([]chorewatch.Event, error) {
	key := target.Key()

	unlock, err := s.locker.Lock(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", key, err)
	}
	defer unlock()

	snap, err := s.fetcher.Fetch(ctx, target.GroupId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}

	prev, err := s.states.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline: %w", err)
	}

	evts, next := chorewatch.Diff(prev, *snap)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cancelled before commit: %w", err)
	}

	if err := s.states.Put(ctx, key, next); err != nil {
		return nil, fmt.Errorf("failed to write baseline: %w", err)
	}

	s.logger.Info(choreWatchModule, "Poll cycle committed", map[string]interface{}{
		"device_id":     target.DeviceId,
		"group_id":      target.GroupId,
		"first_run":     prev == nil,
		"chore_count":   *next.LastChoreCount,
		"grocery_count": *next.LastGroceryCount,
		"events":        len(evts),
	})
	return evts, nil
}

// Reset forgets the baseline so the next cycle starts silently again.
func (s *choreWatchService) Reset(ctx context.Context, target chorewatch.Target) error {
	key := target.Key()

	unlock, err := s.locker.Lock(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", key, err)
	}
	defer unlock()

	if err := s.states.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to reset baseline: %w", err)
	}

	s.logger.Info(choreWatchModule, "Baseline reset", map[string]interface{}{
		"device_id": target.DeviceId,
		"group_id":  target.GroupId,
	})
	return nil
}
