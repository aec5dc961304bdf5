package websocket

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/logger"
)

// Hub fans the pipeline activity stream out to connected websocket clients.
// It tails the in-process event bus, so anything published by the services
// shows up on every open activity feed.
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	pubSub *gochannel.GoChannel
	topic  string

	logger logger.ILogger
}

func NewHub(pubSub *gochannel.GoChannel, topic string, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		pubSub:     pubSub,
		topic:      topic,
		logger:     log,
	}
}

// Run owns the client registry and the bus subscription. Call once from a
// goroutine at startup.
func (h *Hub) Run(ctx context.Context) {
	go h.consumeActivity(ctx)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ClientId] = append(h.clients[client.ClientId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.ClientId})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.ClientId]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.ClientId] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.ClientId]) == 0 {
					delete(h.clients, client.ClientId)
				}
			}
			h.mu.Unlock()

		case <-ctx.Done():
			return
		}
	}
}

// Broadcast sends raw payload bytes to every connected client. Slow clients
// are dropped rather than allowed to stall the feed.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"client_id": client.ClientId})
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
	}
}

func (h *Hub) consumeActivity(ctx context.Context) {
	messages, err := h.pubSub.Subscribe(ctx, h.topic)
	if err != nil {
		h.logger.Error("Hub", "Failed to subscribe to activity topic", map[string]interface{}{"error": err.Error()})
		return
	}

	for msg := range messages {
		h.Broadcast(msg.Payload)
		msg.Ack()
	}
}
