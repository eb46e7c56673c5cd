package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"drivedash/internal/hub"
	"drivedash/internal/observability"
	"drivedash/internal/store"
)

type WSHandler struct {
	hub       *hub.Hub
	telemetry *store.TelemetryStore
	reports   *store.ReportStore
	logger    *slog.Logger
}

func NewWSHandler(h *hub.Hub, ts *store.TelemetryStore, rs *store.ReportStore, logger *slog.Logger) *WSHandler {
	return &WSHandler{hub: h, telemetry: ts, reports: rs, logger: logger}
}

type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SubscribePayload struct {
	Topics []string `json:"topics"`
}

type UnsubscribePayload struct {
	Topics []string `json:"topics"`
}

type SnapshotMessage struct {
	Type    string `json:"type"`
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

type PongMessage struct {
	Type string `json:"type"`
}

func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Error("websocket accept failed", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := hub.NewClient(clientID, 256)

	h.hub.Register(client)
	ServerStats.IncWSConnections()
	observability.WSConnections.Inc()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go h.writeLoop(ctx, conn, client)

	h.readLoop(ctx, conn, client)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *hub.Client) {
	defer func() {
		h.hub.Unregister(client)
		ServerStats.DecWSConnections()
		observability.WSConnections.Dec()
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				h.logger.Debug("websocket read error", "client_id", client.ID, "error", err)
			}
			return
		}

		if msgType != websocket.MessageText {
			continue
		}
		ServerStats.IncWSMessagesIn()

		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Debug("invalid message format", "client_id", client.ID, "error", err)
			continue
		}

		switch msg.Type {
		case "subscribe":
			var payload SubscribePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			topics := validTopics(payload.Topics)
			if len(topics) > 0 {
				h.hub.Subscribe(client, topics)
				h.sendSnapshots(client, topics)
			}

		case "unsubscribe":
			var payload UnsubscribePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			if len(payload.Topics) > 0 {
				h.hub.Unsubscribe(client, payload.Topics)
			}

		case "ping":
			h.sendPong(client)
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *hub.Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				return
			}
			ServerStats.IncWSMessagesOut()

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// sendSnapshots seeds a fresh subscriber with current state per topic so
// the dashboard renders immediately instead of waiting for the next event
func (h *WSHandler) sendSnapshots(client *hub.Client, topics []string) {
	for _, topic := range topics {
		var payload any
		switch topic {
		case hub.TopicTelemetry:
			t, ok := h.telemetry.Current()
			if !ok {
				continue
			}
			payload = t
		case hub.TopicAlerts:
			payload = h.telemetry.Alerts()
		case hub.TopicNotifications:
			payload = h.telemetry.Notifications()
		case hub.TopicReports:
			payload = h.reports.List()
		default:
			continue
		}

		data, err := json.Marshal(SnapshotMessage{Type: "snapshot", Topic: topic, Payload: payload})
		if err != nil {
			continue
		}

		select {
		case client.Send <- data:
		default:
			h.logger.Debug("failed to send snapshot, buffer full", "client_id", client.ID, "topic", topic)
		}
	}
}

func (h *WSHandler) sendPong(client *hub.Client) {
	msg := PongMessage{Type: "pong"}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	select {
	case client.Send <- data:
	default:
	}
}

func validTopics(topics []string) []string {
	result := make([]string, 0, len(topics))
	for _, t := range topics {
		if hub.ValidTopic(t) {
			result = append(result, t)
		}
	}
	return result
}
