// Package websocket
package websocket

import (
	"context"
	"encoding/json"

	"hoststatus/internal/logger"
)

const (
	ChannelStatus = "status"

	EventStatusUpdated = "status.updated"
)

type Event struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

type Subscription struct {
	client  *Client
	channel string
}

// ReplayFunc returns the event a new subscriber of channel should receive
// right away, if any.
type ReplayFunc func(channel string) (*Event, bool)

type Hub struct {
	clients  map[*Client]bool
	channels map[string]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan *Subscription
	unsubscribe chan *Subscription
	events      chan *Event
	done        chan struct{}

	replay ReplayFunc
	log    logger.Logger
}

func NewHub(log logger.Logger, replay ReplayFunc) *Hub {
	return &Hub{
		clients:  make(map[*Client]bool),
		channels: make(map[string]map[*Client]bool),

		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *Subscription),
		unsubscribe: make(chan *Subscription),
		events:      make(chan *Event, 100),
		done:        make(chan struct{}),

		replay: replay,
		log:    log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "total_clients", len(h.clients))

		case client := <-h.unregister:
			h.drop(client)

		case sub := <-h.subscribe:
			if _, ok := h.clients[sub.client]; !ok {
				continue
			}
			if h.channels[sub.channel] == nil {
				h.channels[sub.channel] = make(map[*Client]bool)
			}
			h.channels[sub.channel][sub.client] = true
			h.log.Debug("ws: client subscribed", "channel", sub.channel)

			if h.replay != nil {
				if event, ok := h.replay(sub.channel); ok {
					h.deliver(event, map[*Client]bool{sub.client: true})
				}
			}

		case sub := <-h.unsubscribe:
			if subs, ok := h.channels[sub.channel]; ok {
				delete(subs, sub.client)
				if len(subs) == 0 {
					delete(h.channels, sub.channel)
				}
				h.log.Debug("ws: client unsubscribed", "channel", sub.channel)
			}

		case event := <-h.events:
			subs, ok := h.channels[event.Channel]
			if !ok {
				h.log.Debug("ws: event channel has no subscribers", "channel", event.Channel)
				continue
			}
			h.deliver(event, subs)
		}
	}
}

func (h *Hub) deliver(event *Event, targets map[*Client]bool) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws: failed to marshal event", "error", err)
		return
	}

	for client := range targets {
		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client channel full, dropping client")
			h.drop(client)
		}
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)

	for channel, subs := range h.channels {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.channels, channel)
		}
	}

	h.log.Info("ws: client unregistered", "total_clients", len(h.clients))
}

// Emit queues an event for the channel's subscribers. It never blocks; if
// the queue is full the event is dropped.
func (h *Hub) Emit(channel, event string, payload any) {
	select {
	case h.events <- &Event{Channel: channel, Event: event, Payload: payload}:
	default:
		h.log.Warn("ws: event queue full, dropping event", "channel", channel, "event", event)
	}
}

// send hands a request to the hub loop unless the hub has stopped.
func send[T any](h *Hub, ch chan T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-h.done:
		return false
	}
}
