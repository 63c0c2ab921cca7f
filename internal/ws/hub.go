package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const outboxSize = 256

// delivery is one event addressed to a set of users.
type delivery struct {
	msg []byte
	to  map[uuid.UUID]struct{}
}

// Hub routes match events to the dashboards of their recipients. All membership
// changes happen on the Run goroutine; the mutex only guards readers such as
// ClientCount.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	joins  chan *Client
	leaves chan *Client
	outbox chan delivery
	done   chan struct{}

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		joins:   make(chan *Client, 32),
		leaves:  make(chan *Client, 32),
		outbox:  make(chan delivery, outboxSize),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Run processes joins, leaves and events until ctx is done, then
// disconnects every client. Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return
		case c := <-h.joins:
			h.join(c)
		case c := <-h.leaves:
			h.drop(c)
		case d := <-h.outbox:
			h.deliver(d)
		}
	}
}

func (h *Hub) Register(c *Client) {
	if h == nil || c == nil {
		return
	}
	select {
	case h.joins <- c:
	case <-h.done:
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

func (h *Hub) Unregister(c *Client) {
	if h == nil || c == nil {
		return
	}
	select {
	case h.leaves <- c:
	case <-h.done:
	}
}

// Send queues msg for every connection of the given users. It never blocks;
// when the outbox is full the message is dropped.
func (h *Hub) Send(msg []byte, userIDs ...uuid.UUID) {
	if h == nil || len(userIDs) == 0 {
		return
	}
	to := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		to[id] = struct{}{}
	}
	select {
	case h.outbox <- delivery{msg: msg, to: to}:
	default:
		h.logger.Warn("ws event dropped", zap.Int("outbox", outboxSize))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) join(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("ws client joined", zap.Int("clients", n))
}

func (h *Hub) drop(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.logger.Debug("ws client left", zap.Int("clients", n))
	}
}

// deliver hands d to every addressed client and drops any whose send buffer
// is full.
func (h *Hub) deliver(d delivery) {
	h.mu.RLock()
	var slow []*Client
	sent := 0
	for c := range h.clients {
		if _, ok := d.to[c.userID]; !ok {
			continue
		}
		select {
		case c.send <- d.msg:
			sent++
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.drop(c)
	}
	h.logger.Debug("ws event sent", zap.Int("clients", sent), zap.Int("dropped", len(slow)))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
