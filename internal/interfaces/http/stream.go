package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/asymlab/tamscan/internal/domain"
)

const (
	streamWriteWait = 10 * time.Second
	streamPongWait  = 60 * time.Second
	streamPingEvery = 45 * time.Second
)

// StreamHub pushes score-update events to connected websocket clients. It
// implements application.Notifier; the refresh flow calls ScoresUpdated and
// every connected dashboard sees the new ranking without polling.
type StreamHub struct {
	upgrader websocket.Upgrader
	metrics  *MetricsRegistry

	mu      sync.Mutex
	clients map[*streamClient]struct{}
	closed  bool
}

type streamClient struct {
	conn *websocket.Conn
	send chan scoresEvent
}

type scoresEvent struct {
	Type      string        `json:"type"`
	Count     int           `json:"count"`
	Updates   []scoreUpdate `json:"updates"`
	Timestamp time.Time     `json:"timestamp"`
}

type scoreUpdate struct {
	Ticker      string  `json:"ticker"`
	Total       float64 `json:"total"`
	DataQuality float64 `json:"data_quality"`
}

// NewStreamHub creates an empty hub.
func NewStreamHub(metrics *MetricsRegistry) *StreamHub {
	return &StreamHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" ||
					strings.Contains(origin, "localhost") ||
					strings.Contains(origin, "127.0.0.1")
			},
		},
		metrics: metrics,
		clients: make(map[*streamClient]struct{}),
	}
}

// Serve upgrades the request and services the client until it disconnects.
func (h *StreamHub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}

	client := &streamClient{conn: conn, send: make(chan scoresEvent, 8)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	h.metrics.StreamClients.Inc()

	go h.writeLoop(client)
	h.readLoop(client)
}

// ScoresUpdated broadcasts a summary of the re-scored universe. Slow
// clients are dropped rather than blocking the refresh flow.
func (h *StreamHub) ScoresUpdated(records []domain.CompanyRecord) {
	event := scoresEvent{
		Type:      "scores_updated",
		Count:     len(records),
		Updates:   make([]scoreUpdate, 0, len(records)),
		Timestamp: time.Now().UTC(),
	}
	for i := range records {
		update := scoreUpdate{Ticker: records[i].Ticker, DataQuality: records[i].DataQuality}
		if records[i].Scores != nil {
			update.Total = records[i].Scores.Total
		}
		event.Updates = append(event.Updates, update)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- event:
		default:
			h.dropLocked(client)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *StreamHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all clients and rejects new ones.
func (h *StreamHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for client := range h.clients {
		h.dropLocked(client)
	}
}

func (h *StreamHub) dropLocked(client *streamClient) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.metrics.StreamClients.Dec()
}

func (h *StreamHub) remove(client *streamClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(client)
}

func (h *StreamHub) writeLoop(client *streamClient) {
	ping := time.NewTicker(streamPingEvery)
	defer func() {
		ping.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case event, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteJSON(event); err != nil {
				h.remove(client)
				return
			}
		case <-ping.C:
			client.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(client)
				return
			}
		}
	}
}

// readLoop drains inbound frames so pongs and close frames are processed.
// The stream is one-way; client payloads are discarded.
func (h *StreamHub) readLoop(client *streamClient) {
	defer func() {
		h.remove(client)
		client.conn.Close()
	}()

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(streamPongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(streamPongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}
