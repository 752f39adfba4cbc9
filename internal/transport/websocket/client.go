package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ConnectionManager tracks the single live connection of each game.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// conn.WriteJSON is not safe for concurrent use, so each game gets a write lock
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// AddConnection registers conn for gameID, closing any older connection to the same game.
func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[gameID]; exists && oldConn != conn {
		oldConn.Close()
	}

	cm.connections[gameID] = conn
	cm.writeMu[gameID] = &sync.Mutex{}
}

// RemoveConnectionIfMatching avoids closing a NEW connection when cleaning up an OLD one.
func (cm *ConnectionManager) RemoveConnectionIfMatching(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[gameID]; exists && currentConn == conn {
		currentConn.Close()
		delete(cm.connections, gameID)
		delete(cm.writeMu, gameID)
	}
}

// Detach forgets conn for gameID without closing it, used when a connection moves to a new game.
func (cm *ConnectionManager) Detach(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[gameID]; exists && currentConn == conn {
		delete(cm.connections, gameID)
		delete(cm.writeMu, gameID)
	}
}

func (cm *ConnectionManager) IsCurrentConnection(gameID string, conn *websocket.Conn) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	currentConn, exists := cm.connections[gameID]
	return exists && currentConn == conn
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// SendMessage writes a JSON message to the connection of gameID, if any
func (cm *ConnectionManager) SendMessage(gameID string, message ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[gameID]
	mu, muExists := cm.writeMu[gameID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil // disconnected, ignore
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(message)
}
