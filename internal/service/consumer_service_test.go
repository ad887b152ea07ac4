package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"household-sync-be/internal/dto"
	"household-sync-be/internal/pkg/logger"
	"household-sync-be/pkg/chorewatch"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedWatcher struct {
	mu      sync.Mutex
	retries int // number of Retry results before succeeding
	calls   []chorewatch.Target
	resets  []chorewatch.Target
}

func (w *scriptedWatcher) RunCycle(ctx context.Context, target chorewatch.Target) chorewatch.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, target)
	if w.retries > 0 {
		w.retries--
		return chorewatch.ResultRetry
	}
	return chorewatch.ResultSuccess
}

func (w *scriptedWatcher) Reset(ctx context.Context, target chorewatch.Target) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resets = append(w.resets, target)
	return nil
}

func (w *scriptedWatcher) callCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.calls)
}

func newTestConsumer(t *testing.T, watcher IChoreWatchService, budget time.Duration) (*gochannel.GoChannel, context.CancelFunc) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	cs := NewConsumerService(pubSub, "poll", watcher, budget, logger.NewNopLogger()).(*consumerService)
	cs.newBackOff = func() backoff.BackOff { return backoff.NewConstantBackOff(time.Millisecond) }

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, cs.Consume(ctx))
	return pubSub, cancel
}

func publishPoll(t *testing.T, pub message.Publisher, groupId, deviceId string) {
	payload, err := json.Marshal(dto.PublishPollRequestMessage{GroupId: groupId, DeviceId: deviceId})
	require.NoError(t, err)
	require.NoError(t, NewPublisherService("poll", pub).Publish(context.Background(), payload))
}

func TestConsumer_RetriesUntilSuccess(t *testing.T) {
	watcher := &scriptedWatcher{retries: 2}
	pubSub, _ := newTestConsumer(t, watcher, time.Second)

	publishPoll(t, pubSub, "g1", "d1")

	assert.Eventually(t, func() bool { return watcher.callCount() == 3 }, time.Second, time.Millisecond)
	assert.Equal(t, chorewatch.Target{GroupId: "g1", DeviceId: "d1"}, watcher.calls[0])
}

func TestConsumer_GivesUpAfterBudget(t *testing.T) {
	watcher := &scriptedWatcher{retries: 1 << 30}
	pubSub, _ := newTestConsumer(t, watcher, 20*time.Millisecond)

	publishPoll(t, pubSub, "g1", "d1")
	// The next request is only delivered once the first was acked
	publishPoll(t, pubSub, "g2", "d2")

	assert.Eventually(t, func() bool {
		watcher.mu.Lock()
		defer watcher.mu.Unlock()
		for _, c := range watcher.calls {
			if c.GroupId == "g2" {
				return true
			}
		}
		return false
	}, 2*time.Second, time.Millisecond)
}

func TestConsumer_SkipsMalformedMessages(t *testing.T) {
	watcher := &scriptedWatcher{}
	pubSub, _ := newTestConsumer(t, watcher, time.Second)

	require.NoError(t, NewPublisherService("poll", pubSub).Publish(context.Background(), []byte("not json")))
	publishPoll(t, pubSub, "g1", "d1")

	assert.Eventually(t, func() bool { return watcher.callCount() == 1 }, time.Second, time.Millisecond)
}
