package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"household-sync-be/internal/model"
	"household-sync-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel is the Redis pub/sub channel instances use to reach devices
// connected elsewhere.
const ClusterChannel = "household_sync:notifications"

type clusterMessage struct {
	Origin         string          `json:"origin"`
	TargetDeviceID string          `json:"target_device_id"`
	Message        json.RawMessage `json:"message"`
}

type Hub struct {
	// DeviceID -> connections (a device may hold several sockets)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance delivery, nil on a single instance
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.DeviceID] = append(h.clients[client.DeviceID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"device_id": client.DeviceID})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.DeviceID]
			for i, c := range clients {
				if c == client {
					h.clients[client.DeviceID] = append(clients[:i], clients[i+1:]...)
					close(client.Send)
					break
				}
			}
			if len(h.clients[client.DeviceID]) == 0 {
				delete(h.clients, client.DeviceID)
				h.logger.Info("Hub", "Device has no open connections", map[string]interface{}{"device_id": client.DeviceID})
			}
			h.mu.Unlock()
		}
	}
}

// Send pushes a notification to every connection of the device, on this
// instance and, through Redis, on the others. It implements
// service.NotificationDelivery.
func (h *Hub) Send(deviceID string, notification model.Notification) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode notification", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(deviceID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{
			Origin:         h.instanceID,
			TargetDeviceID: deviceID,
			Message:        data,
		})
		if err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish to cluster", map[string]interface{}{"error": err.Error()})
		}
	}
}

// ConnectionCount returns the number of open sockets of a device on this instance.
func (h *Hub) ConnectionCount(deviceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[deviceID])
}

// deliverLocal sends while holding the read lock: Run closes Send channels
// under the write lock, so a client seen here is never closed mid-send.
func (h *Hub) deliverLocal(deviceID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[deviceID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{"device_id": deviceID})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}
		h.deliverLocal(payload.TargetDeviceID, payload.Message)
	}
}
