package realtime

import (
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

// ErrNotInitialized is returned when a push is attempted before the hub has
// been constructed and wired. Pushes must fail loudly, never silently.
var ErrNotInitialized = errors.New("realtime: hub not initialized")

// Server→client event names.
const (
	EventNewNotification = "new_notification"
	EventRequestUpdated  = "request_updated"
)

// Event is the wire envelope for server→client pushes.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// connection is a single websocket client. It stays anonymous (outside any
// room) until the client sends a join message.
type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

// Hub is the live transport registry: it maps user ids to the set of open
// connections ("rooms") so the dispatcher can target pushes without
// broadcasting. One user may hold several connections (tabs, devices); all of
// them receive the push. Membership is cleaned up on disconnect, no explicit
// leave is needed.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*connection]struct{}
	log   *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*connection]struct{}),
		log:   log,
	}
}

func roomKey(userID int64) string { return strconv.FormatInt(userID, 10) }

func (h *Hub) join(c *connection) {
	key := roomKey(c.userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[key] == nil {
		h.rooms[key] = make(map[*connection]struct{})
	}
	h.rooms[key][c] = struct{}{}
}

func (h *Hub) drop(c *connection) {
	key := roomKey(c.userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[key]; ok {
		if _, in := members[c]; in {
			delete(members, c)
			close(c.send)
			if len(members) == 0 {
				delete(h.rooms, key)
			}
		}
	}
}

// EmitToUser pushes an event to every live connection in the recipient's
// room. An empty room is a no-op, not an error.
func (h *Hub) EmitToUser(userID int64, event string, data any) error {
	if h == nil {
		return ErrNotInitialized
	}
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[roomKey(userID)] {
		select {
		case c.send <- payload:
		default:
			// Client too slow, skip.
		}
	}
	return nil
}

// Broadcast pushes an event to every connected client regardless of room.
// Used for list-refresh events like request_updated.
func (h *Hub) Broadcast(event string, data any) error {
	if h == nil {
		return ErrNotInitialized
	}
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, members := range h.rooms {
		for c := range members {
			select {
			case c.send <- payload:
			default:
			}
		}
	}
	return nil
}

// ServeConn runs the read/write loops for an upgraded connection. The
// connection only enters its user's room once the client announces itself
// with a join message. Blocks until disconnect.
func (h *Hub) ServeConn(conn *websocket.Conn, userID int64) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 64),
	}

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	joined := false
	defer func() {
		if joined {
			h.drop(c)
		} else {
			close(c.send)
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var event struct {
			Type   string `json:"type"`
			UserID int64  `json:"user_id"`
		}
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}

		if event.Type == "join" && !joined {
			// The announced id must match the authenticated identity.
			if event.UserID != 0 && event.UserID != c.userID {
				h.log.WithFields(logrus.Fields{
					"token_user": c.userID,
					"join_user":  event.UserID,
				}).Warn("join user id mismatch, ignoring")
				continue
			}
			h.join(c)
			joined = true
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
