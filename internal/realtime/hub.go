package realtime

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

const bookingsChannel = "bookings:broadcast"

// Hub fans booking snapshots out to every connected websocket client. With
// redis configured, events travel through pub/sub so all instances deliver
// them; without it the hub degrades to in-process fan-out.
type Hub struct {
	redis   *redis.Client
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Send chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register() *Client {
	client := &Client{
		Send: make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

// Broadcast never blocks the caller: slow clients miss messages and redis
// failures are logged, not returned.
func (h *Hub) Broadcast(payload []byte) {
	if h.redis == nil {
		h.fanOut(payload)
		return
	}

	if err := h.redis.Publish(context.Background(), bookingsChannel, payload).Err(); err != nil {
		log.Printf("redis publish error: %v", err)
		h.fanOut(payload)
	}
}

func (h *Hub) fanOut(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	pubsub := h.redis.Subscribe(context.Background(), bookingsChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.fanOut([]byte(msg.Payload))
	}
}
