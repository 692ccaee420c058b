package connection

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a connected replay viewer
type Client struct {
	ID      string
	Conn    *websocket.Conn
	Send    chan []byte
	HandIDs []string // Hands replayed on this connection
}

// NewClient wraps a websocket connection with an outgoing buffer.
func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		Conn: conn,
		Send: make(chan []byte, 256),
	}
}

// Manager handles all client connections
type Manager struct {
	clients    map[string]*Client // Map connection IDs to clients
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start begins processing connection events until Stop is called
func (m *Manager) Start() {
	for {
		select {
		case client := <-m.Register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			m.mutex.Unlock()
		case client := <-m.Unregister:
			m.mutex.Lock()
			if _, ok := m.clients[client.ID]; ok {
				delete(m.clients, client.ID)
				close(client.Send)
			}
			m.mutex.Unlock()
		case <-m.done:
			return
		}
	}
}

// Stop ends the Start loop.
func (m *Manager) Stop() {
	close(m.done)
}

// SendToClient queues a message for one client. A client whose buffer is
// full is dropped and its send channel closed.
func (m *Manager) SendToClient(clientID string, message []byte) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	select {
	case client.Send <- message:
		return true
	default:
		delete(m.clients, clientID)
		close(client.Send)
		return false
	}
}

// AddHandToClient remembers that a client replayed a hand
func (m *Manager) AddHandToClient(clientID string, handID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if client, ok := m.clients[clientID]; ok {
		for _, id := range client.HandIDs {
			if id == handID {
				return true // Already added
			}
		}
		client.HandIDs = append(client.HandIDs, handID)
		return true
	}
	return false
}

// HandsOf lists the hands a client has replayed
func (m *Manager) HandsOf(clientID string) []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if client, ok := m.clients[clientID]; ok {
		return append([]string(nil), client.HandIDs...)
	}
	return nil
}

// Count returns the number of connected clients
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}
