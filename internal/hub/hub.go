package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Topics a dashboard client can subscribe to
const (
	TopicTelemetry     = "telemetry"
	TopicAlerts        = "alerts"
	TopicNotifications = "notifications"
	TopicReports       = "reports"
)

func ValidTopic(topic string) bool {
	switch topic {
	case TopicTelemetry, TopicAlerts, TopicNotifications, TopicReports:
		return true
	}
	return false
}

type Client struct {
	ID     string
	Send   chan []byte
	topics map[string]struct{}
	mu     sync.RWMutex
}

func NewClient(id string, bufferSize int) *Client {
	return &Client{
		ID:     id,
		Send:   make(chan []byte, bufferSize),
		topics: make(map[string]struct{}),
	}
}

func (c *Client) HasTopic(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.topics[topic]
	return ok
}

func (c *Client) AddTopics(topics []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range topics {
		c.topics[t] = struct{}{}
	}
}

func (c *Client) RemoveTopics(topics []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range topics {
		delete(c.topics, t)
	}
}

func (c *Client) Topics() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	topics := make([]string, 0, len(c.topics))
	for t := range c.topics {
		topics = append(topics, t)
	}
	return topics
}

// Event is the wire envelope for everything pushed to dashboard clients
type Event struct {
	Type    string `json:"type"`
	Topic   string `json:"topic"`
	Payload any    `json:"payload,omitempty"`
}

type outbound struct {
	topic string
	data  []byte
}

// Hub fans events out to WebSocket clients by topic subscription
type Hub struct {
	mu           sync.RWMutex
	clients      map[*Client]struct{}
	topicClients map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:      make(map[*Client]struct{}),
		topicClients: make(map[string]map[*Client]struct{}),
		register:     make(chan *Client, 16),
		unregister:   make(chan *Client, 16),
		broadcast:    make(chan outbound, 256),
		logger:       logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("client registered", "client_id", client.ID, "total", len(h.clients))

		case client := <-h.unregister:
			h.removeClient(client)

		case out := <-h.broadcast:
			h.fanout(out)
		}
	}
}

func (h *Hub) Subscribe(client *Client, topics []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.AddTopics(topics)

	for _, topic := range topics {
		if h.topicClients[topic] == nil {
			h.topicClients[topic] = make(map[*Client]struct{})
		}
		h.topicClients[topic][client] = struct{}{}
	}
}

func (h *Hub) Unsubscribe(client *Client, topics []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.RemoveTopics(topics)

	for _, topic := range topics {
		if h.topicClients[topic] != nil {
			delete(h.topicClients[topic], client)
			if len(h.topicClients[topic]) == 0 {
				delete(h.topicClients, topic)
			}
		}
	}
}

// Broadcast queues an event for every subscriber of the topic. Marshals
// once; drops the event if the hub's queue is full.
func (h *Hub) Broadcast(topic string, payload any) {
	data, err := json.Marshal(Event{Type: "event", Topic: topic, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal event", "topic", topic, "error", err)
		return
	}

	select {
	case h.broadcast <- outbound{topic: topic, data: data}:
	default:
		h.logger.Warn("broadcast channel full, dropping event", "topic", topic)
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) fanout(out outbound) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.topicClients[out.topic] {
		select {
		case client.Send <- out.data:
		default:
			h.logger.Debug("client send buffer full", "client_id", client.ID, "topic", out.topic)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}

	for _, topic := range client.Topics() {
		if h.topicClients[topic] != nil {
			delete(h.topicClients[topic], client)
			if len(h.topicClients[topic]) == 0 {
				delete(h.topicClients, topic)
			}
		}
	}

	delete(h.clients, client)
	close(client.Send)
	h.logger.Debug("client unregistered", "client_id", client.ID, "total", len(h.clients))
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.Send)
	}
	h.clients = make(map[*Client]struct{})
	h.topicClients = make(map[string]map[*Client]struct{})
}
