package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"household-sync-be/internal/dto"
	"household-sync-be/internal/pkg/logger"
	"household-sync-be/pkg/chorewatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	payloads []dto.PublishPollRequestMessage
	err      error
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	var msg dto.PublishPollRequestMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	p.payloads = append(p.payloads, msg)
	return nil
}

func TestPollService_SubscribeAndEnqueueAll(t *testing.T) {
	ctx := context.Background()
	pub := &capturePublisher{}
	svc := NewPollService(newMemStore(), &scriptedWatcher{}, pub, logger.NewNopLogger())

	require.NoError(t, svc.Subscribe(ctx, &dto.PollTargetRequest{GroupId: "g1", DeviceId: "d1"}))
	require.NoError(t, svc.Subscribe(ctx, &dto.PollTargetRequest{GroupId: "g1", DeviceId: "d1"}))
	require.NoError(t, svc.Subscribe(ctx, &dto.PollTargetRequest{GroupId: "g1", DeviceId: "d2"}))
	// Each subscribe queues an initial poll
	assert.Len(t, pub.payloads, 3)

	pub.payloads = nil
	res, err := svc.EnqueueAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Enqueued)

	devices := []string{pub.payloads[0].DeviceId, pub.payloads[1].DeviceId}
	sort.Strings(devices)
	assert.Equal(t, []string{"d1", "d2"}, devices)

	require.NoError(t, svc.Unsubscribe(ctx, &dto.PollTargetRequest{GroupId: "g1", DeviceId: "d1"}))
	res, err = svc.EnqueueAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Enqueued)
}

func TestPollService_SubscribeSurvivesQueueFailure(t *testing.T) {
	pub := &capturePublisher{err: errors.New("closed")}
	store := newMemStore()
	svc := NewPollService(store, &scriptedWatcher{}, pub, logger.NewNopLogger())

	require.NoError(t, svc.Subscribe(context.Background(), &dto.PollTargetRequest{GroupId: "g1", DeviceId: "d1"}))
	assert.Len(t, store.subs, 1)

	res, err := svc.EnqueueAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Enqueued)
}

func TestPollService_RunAndReset(t *testing.T) {
	watcher := &scriptedWatcher{retries: 1}
	svc := NewPollService(newMemStore(), watcher, &capturePublisher{}, logger.NewNopLogger())
	req := &dto.PollTargetRequest{GroupId: "g1", DeviceId: "d1"}

	assert.Equal(t, "retry", svc.Run(context.Background(), req).Result)
	assert.Equal(t, "success", svc.Run(context.Background(), req).Result)

	require.NoError(t, svc.Reset(context.Background(), req))
	assert.Equal(t, []chorewatch.Target{{GroupId: "g1", DeviceId: "d1"}}, watcher.resets)
}
