// Package realtime streams verdicts of running submissions to websocket
// clients as the execution backend reports results.
package realtime

import (
	"context"

	"github.com/rs/zerolog"
)

// Hub manages websocket clients and routes verdicts by submission id.
type Hub struct {
	clients map[*Client]bool

	// submission id -> set of subscribed clients
	subscriptions map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	subscribe  chan subscribeMsg
	broadcast  chan broadcastMsg

	logger zerolog.Logger
}

type subscribeMsg struct {
	client       *Client
	submissionID string
}

type broadcastMsg struct {
	submissionID string
	payload      []byte
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		subscribe:     make(chan subscribeMsg),
		broadcast:     make(chan broadcastMsg, 256),
		logger:        logger,
	}
}

// Publish queues payload for every client subscribed to submissionID
func (h *Hub) Publish(submissionID string, payload []byte) {
	h.broadcast <- broadcastMsg{submissionID: submissionID, payload: payload}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[*Client]bool)
			h.subscriptions = make(map[string]map[*Client]bool)
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug().Int("clients", len(h.clients)).Msg("Client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.remove(client)
				h.logger.Debug().Int("clients", len(h.clients)).Msg("Client unregistered")
			}

		case msg := <-h.subscribe:
			if _, ok := h.clients[msg.client]; !ok {
				continue
			}
			if _, ok := h.subscriptions[msg.submissionID]; !ok {
				h.subscriptions[msg.submissionID] = make(map[*Client]bool)
			}
			h.subscriptions[msg.submissionID][msg.client] = true
			h.logger.Debug().
				Str("submissionId", msg.submissionID).
				Int("subscribers", len(h.subscriptions[msg.submissionID])).
				Msg("Client subscribed")

		case msg := <-h.broadcast:
			for client := range h.subscriptions[msg.submissionID] {
				select {
				case client.send <- msg.payload:
				default:
					// slow consumer
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.send)
	for id, subs := range h.subscriptions {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, id)
		}
	}
}
