package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"clipnote-be/internal/pkg/logger"
)

// clusterChannel carries frames between instances so a user connected
// to one instance still receives pushes triggered on another.
const clusterChannel = "cluster_events"

type clusterMessage struct {
	Origin string    `json:"origin"`
	Kind   string    `json:"kind"`
	UserId uuid.UUID `json:"user_id"`
	Data   []byte    `json:"data,omitempty"`
}

const (
	clusterKindSend      = "send"
	clusterKindCloseUser = "close_user"
)

// Hub tracks every live websocket connection grouped by user.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]map[*Client]struct{}
	redis      *redis.Client
	instanceID string
	logger     logger.ILogger
}

func NewHub(redisClient *redis.Client, logger logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		redis:      redisClient,
		instanceID: uuid.NewString(),
		logger:     logger,
	}
}

// Run consumes the cluster relay until ctx is cancelled. Safe to skip
// when Redis is not configured.
func (h *Hub) Run(ctx context.Context) {
	if h.redis == nil {
		return
	}

	sub := h.redis.Subscribe(ctx, clusterChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var cm clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &cm); err != nil {
				h.logger.Warn("websocket", "bad cluster message", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}
			if cm.Origin == h.instanceID {
				continue
			}
			switch cm.Kind {
			case clusterKindSend:
				h.deliverLocal(cm.UserId, cm.Data)
			case clusterKindCloseUser:
				h.closeUserLocal(cm.UserId)
			}
		}
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	c.closeSend()
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
}

// Send delivers a frame to every connection the user has, on this
// instance and, via the relay, on the others.
func (h *Hub) Send(userID uuid.UUID, data []byte) {
	h.deliverLocal(userID, data)
	h.relay(clusterMessage{Kind: clusterKindSend, UserId: userID, Data: data})
}

// Broadcast delivers a frame to every connected client.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, set := range h.clients {
		for c := range set {
			c.deliver(data)
		}
	}
}

// CloseUser tears down all of a user's connections and returns only
// once the local ones are gone. Used on logout so no frame arrives
// after the identity is dropped.
func (h *Hub) CloseUser(userID uuid.UUID) {
	h.closeUserLocal(userID)
	h.relay(clusterMessage{Kind: clusterKindCloseUser, UserId: userID})
}

func (h *Hub) closeUserLocal(userID uuid.UUID) {
	h.mu.Lock()
	set, ok := h.clients[userID]
	if ok {
		delete(h.clients, userID)
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	for c := range set {
		c.closeSend()
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

func (h *Hub) deliverLocal(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	set := h.clients[userID]
	clients := make([]*Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.deliver(data)
	}
}

func (h *Hub) relay(cm clusterMessage) {
	if h.redis == nil {
		return
	}
	cm.Origin = h.instanceID
	payload, err := json.Marshal(cm)
	if err != nil {
		return
	}
	if err := h.redis.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("websocket", "cluster relay publish failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
