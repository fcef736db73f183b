package ws

import (
	"context"
	"sync"

	"jobboard/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type outbound struct {
	userID uuid.UUID // uuid.Nil means every client
	data   []byte
}

// Hub owns the client registry. Only Run mutates it; the mutex lets
// ClientCount read a consistent snapshot.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	outbound   chan outbound
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	log        *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		outbound:   make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		log:        logger.Component(log, "ws"),
	}
}

// Run serves the registry until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for _, set := range h.clients {
				for c := range set {
					c.close()
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]struct{})
			h.mutex.Unlock()
			return

		case c := <-h.register:
			h.mutex.Lock()
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			h.mutex.Unlock()
			h.log.Debugw("client connected", logger.FieldUserID, c.userID, logger.FieldCount, h.ClientCount())

		case c := <-h.unregister:
			h.remove(c)
			h.log.Debugw("client disconnected", logger.FieldUserID, c.userID, logger.FieldCount, h.ClientCount())

		case msg := <-h.outbound:
			for _, c := range h.targets(msg.userID) {
				select {
				case c.send <- msg.data:
				default:
					// slow consumer
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) targets(userID uuid.UUID) []*Client {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	var out []*Client
	if userID != uuid.Nil {
		for c := range h.clients[userID] {
			out = append(out, c)
		}
		return out
	}
	for _, set := range h.clients {
		for c := range set {
			out = append(out, c)
		}
	}
	return out
}

func (h *Hub) remove(c *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	c.close()
}

func (h *Hub) Register(c *Client) {
	h.register <- c
}

func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// SendToUser delivers an event to every open socket of one user.
func (h *Hub) SendToUser(userID uuid.UUID, event string, payload any) {
	if h == nil || userID == uuid.Nil {
		return
	}
	h.enqueue(userID, event, payload)
}

func (h *Hub) Broadcast(event string, payload any) {
	if h == nil {
		return
	}
	h.enqueue(uuid.Nil, event, payload)
}

func (h *Hub) enqueue(userID uuid.UUID, event string, payload any) {
	data, err := encodeEvent(event, payload)
	if err != nil {
		h.log.Warnw("encode event", "event", event, logger.FieldError, err)
		return
	}
	select {
	case h.outbound <- outbound{userID: userID, data: data}:
	default:
		h.log.Warnw("event dropped, buffer full", "event", event)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}
