// Package hub tracks live WebSocket clients per user and pushes
// notification payloads to them.
package hub

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. The feed is push only.
	maxMessageSize = 512

	sendBufferSize = 64
)

// HubMessage is an event on the hub's internal channel.
type HubMessage struct {
	Type    string // "register", "unregister", "deliver"
	UserID  string
	Client  *Client
	Payload []byte
}

// Hub owns the set of live clients. All mutations go through Run.
type Hub struct {
	messageChan chan HubMessage
	done        chan struct{}
	stopOnce    sync.Once

	// map[userID]set of clients
	clients   map[string]map[*Client]struct{}
	clientsMu sync.RWMutex
}

// NewHub creates a Hub. Call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		messageChan: make(chan HubMessage, 512),
		done:        make(chan struct{}),
		clients:     make(map[string]map[*Client]struct{}),
	}
}

// Run processes hub events until Stop is called.
func (h *Hub) Run() {
	log := logrus.WithField("component", "hub")
	log.Info("Hub is running...")

	for {
		select {
		case <-h.done:
			h.closeAll()
			log.Info("Hub is shutting down...")
			return
		case msg := <-h.messageChan:
			switch msg.Type {
			case "register":
				h.registerClient(msg.Client)
			case "unregister":
				h.unregisterClient(msg.Client)
			case "deliver":
				h.deliver(msg.UserID, msg.Payload)
			default:
				log.Warnf("Hub: Received unknown message type: %s for user %s", msg.Type, msg.UserID)
			}
		}
	}
}

// Stop ends Run and closes every client. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// QueueMessage hands msg to the hub without blocking. It reports false
// when the hub is stopped or its channel is full.
func (h *Hub) QueueMessage(msg HubMessage) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.messageChan <- msg:
		return true
	default:
		logrus.WithFields(logrus.Fields{"type": msg.Type, "user_id": msg.UserID}).Warn("Hub message channel full, dropping message")
		return false
	}
}

// Register queues client for registration. It waits for room on the
// channel and reports false only when the hub is stopped.
func (h *Hub) Register(client *Client) bool {
	return h.sendControl(HubMessage{Type: "register", UserID: client.UserID(), Client: client})
}

// Unregister queues client for removal. Like Register it is never dropped
// on a full channel.
func (h *Hub) Unregister(client *Client) bool {
	return h.sendControl(HubMessage{Type: "unregister", UserID: client.UserID(), Client: client})
}

func (h *Hub) sendControl(msg HubMessage) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.messageChan <- msg:
		return true
	case <-h.done:
		return false
	}
}

// Deliver queues payload for every client of userID. It returns false
// when the user has no live client or the hub could not accept it.
func (h *Hub) Deliver(userID string, payload []byte) bool {
	if h.ClientCount(userID) == 0 {
		return false
	}
	return h.QueueMessage(HubMessage{Type: "deliver", UserID: userID, Payload: payload})
}

// ClientCount returns the number of live clients for userID.
func (h *Hub) ClientCount(userID string) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) registerClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to register a nil client")
		return
	}
	h.clientsMu.Lock()
	set, ok := h.clients[client.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.userID] = set
	}
	set[client] = struct{}{}
	count := len(set)
	h.clientsMu.Unlock()

	logrus.WithFields(logrus.Fields{"user_id": client.userID, "clients": count}).Info("Hub: Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	if client == nil {
		return
	}
	h.clientsMu.Lock()
	set, ok := h.clients[client.userID]
	if ok {
		if _, present := set[client]; present {
			delete(set, client)
			close(client.send)
		}
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
	}
	h.clientsMu.Unlock()

	logrus.WithField("user_id", client.userID).Info("Hub: Client unregistered")
}

func (h *Hub) deliver(userID string, payload []byte) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			// Slow client: drop it rather than stall the hub.
			logrus.WithField("user_id", userID).Warn("Hub: Client send buffer full, closing client")
			delete(h.clients[userID], client)
			close(client.send)
		}
	}
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

func (h *Hub) closeAll() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for userID, set := range h.clients {
		for client := range set {
			close(client.send)
		}
		delete(h.clients, userID)
	}
}
