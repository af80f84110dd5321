// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"sync"
	"time"
)

// Row change actions
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event signals that a table's contents changed. Consumers treat it as a
// cue to reload, not as a row-level patch, so no row payload is carried.
type Event struct {
	Table  string    `json:"table"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// Subscription is an in-process listener on one table's change feed.
type Subscription struct {
	C chan Event

	table string
	hub   *Hub
	once  sync.Once
}

// Table returns the table this subscription listens on.
func (s *Subscription) Table() string {
	return s.table
}

// Unsubscribe detaches the subscription and closes its channel. Safe to
// call more than once; only the first call takes effect.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		select {
		case s.hub.unregister <- s:
		case <-s.hub.done:
			// Hub already shut down and closed every channel.
		}
	})
}

// Hub maintains active listeners and fans out change events
type Hub struct {
	subscribers map[string]map[*Subscription]bool // table -> subscriptions
	clients     map[*Client]bool

	register   chan *Subscription
	unregister chan *Subscription
	attach     chan *Client
	detach     chan *Client
	publish    chan Event
	done       chan struct{}
	mu         sync.Mutex
}

// NewHub creates a new change-feed hub
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Subscription]bool),
		clients:     make(map[*Client]bool),
		register:    make(chan *Subscription),
		unregister:  make(chan *Subscription),
		attach:      make(chan *Client),
		detach:      make(chan *Client),
		publish:     make(chan Event, 256),
		done:        make(chan struct{}),
	}
}

// Subscribe registers an in-process listener on a table. The returned
// subscription must be unsubscribed exactly once during teardown.
func (h *Hub) Subscribe(table string) *Subscription {
	sub := &Subscription{
		C:     make(chan Event, 16),
		table: table,
		hub:   h,
	}
	h.register <- sub
	return sub
}

// Publish broadcasts a change event for a table to all listeners.
func (h *Hub) Publish(table, action string) {
	h.publish <- Event{Table: table, Action: action, At: time.Now()}
}

// Run starts the hub's event processing loop. It returns when ctx is
// cancelled, closing every remaining listener channel.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.subscribers[sub.table] == nil {
				h.subscribers[sub.table] = make(map[*Subscription]bool)
			}
			h.subscribers[sub.table][sub] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if subs, ok := h.subscribers[sub.table]; ok {
				if _, ok := subs[sub]; ok {
					delete(subs, sub)
					close(sub.C)
					if len(subs) == 0 {
						delete(h.subscribers, sub.table)
					}
				}
			}
			h.mu.Unlock()

		case client := <-h.attach:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.detach:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.publish:
			h.mu.Lock()
			subs := h.subscribers[event.Table]
			for sub := range subs {
				select {
				case sub.C <- event:
				default:
					// Full buffer means a reload cue is already
					// pending for this listener; dropping is safe.
				}
			}
			for client := range h.clients {
				select {
				case client.send <- mustMarshal(event):
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()

		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for table, subs := range h.subscribers {
				for sub := range subs {
					close(sub.C)
				}
				delete(h.subscribers, table)
			}
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}
