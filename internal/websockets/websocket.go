package websockets

import (
	"time"

	"raftwatch/config"
	"raftwatch/internal/events"
	"raftwatch/internal/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MESSAGE_TYPE_PING           = "ping"
	MESSAGE_TYPE_PONG           = "pong"
	MESSAGE_TYPE_ALERT          = "alert"
	MESSAGE_TYPE_PASS_COMPLETED = "pass_completed"
	MESSAGE_TYPE_ERROR          = "error"

	PING_INTERVAL     = 30 * time.Second
	PONG_TIMEOUT      = 60 * time.Second
	WRITE_TIMEOUT     = 10 * time.Second
	MAX_MESSAGE_SIZE  = 64 * 1024
	SEND_CHANNEL_SIZE = 16
)

// Message is the wire format pushed to dashboard clients.
type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Client struct {
	ID         string
	Connection *websocket.Conn
	Manager    *Manager
	send       chan Message
}

// Manager owns the hub of connected dashboard clients and relays alert
// events from the event bus to them. Connections are read-mostly: clients
// only send pings, the server pushes alerts.
type Manager struct {
	hub      *Hub
	config   config.Config
	log      logger.Logger
	eventBus *events.EventBus
}

func New(eventBus *events.EventBus, config config.Config) (*Manager, error) {
	log := logger.New("websockets")

	manager := &Manager{
		hub: &Hub{
			broadcast:  make(chan Message),
			register:   make(chan *Client),
			unregister: make(chan *Client),
			clients:    make(map[string]*Client),
		},
		config:   config,
		log:      log,
		eventBus: eventBus,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(manager)
	go manager.subscribeToAlertEvents()

	return manager, nil
}

// HandleWebSocket upgrades a dashboard connection and pumps messages until
// the peer goes away.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	client := &Client{
		ID:         uuid.New().String(),
		Connection: c,
		Manager:    m,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
	}

	m.hub.register <- client

	go client.writePump()
	client.readPump()
}

func (m *Manager) subscribeToAlertEvents() {
	log := m.log.Function("subscribeToAlertEvents")

	err := m.eventBus.Subscribe(events.ALERT_CHANNEL, func(event events.Event) error {
		m.hub.broadcast <- Message{
			ID:        event.ID,
			Type:      messageType(event.Type),
			Data:      event.Data,
			Timestamp: event.Timestamp,
		}
		return nil
	})
	if err != nil {
		log.Er("failed to subscribe to alert events", err)
	}
}

func messageType(eventType events.MessageType) string {
	switch eventType {
	case events.ALERT_CREATED:
		return MESSAGE_TYPE_ALERT
	case events.PASS_COMPLETED:
		return MESSAGE_TYPE_PASS_COMPLETED
	default:
		return string(eventType)
	}
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")
	defer func() {
		c.Manager.hub.unregister <- c
		if err := c.Connection.Close(); err != nil {
			log.Warn("failed to close connection", "clientID", c.ID, "error", err)
		}
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	_ = c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	c.Connection.SetPongHandler(func(string) error {
		return c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	})

	for {
		var message Message
		if err := c.Connection.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseGoingAway, websocket.CloseNormalClosure,
			) {
				log.Warn("unexpected close", "clientID", c.ID, "error", err)
			}
			return
		}

		if message.Type == MESSAGE_TYPE_PING {
			c.send <- Message{
				ID:        uuid.New().String(),
				Type:      MESSAGE_TYPE_PONG,
				Timestamp: time.Now(),
			}
		}
	}
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")
	ticker := time.NewTicker(PING_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Connection.WriteJSON(message); err != nil {
				log.Warn("failed to write message", "clientID", c.ID, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
