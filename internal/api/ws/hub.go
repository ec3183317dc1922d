package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"quarto/internal/relay"
)

type Options struct {
	SendBuffer    int
	PingInterval  time.Duration
	WriteTimeout  time.Duration
	MaxFrameBytes int64
	// AllowedOrigin is "*" or a single origin. Requests without an Origin
	// header (non-browser clients) are always accepted.
	AllowedOrigin string
}

func (o Options) withDefaults() Options {
	if o.SendBuffer <= 0 {
		o.SendBuffer = 32
	}
	if o.PingInterval <= 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	if o.MaxFrameBytes <= 0 {
		o.MaxFrameBytes = 64 * 1024
	}
	if o.AllowedOrigin == "" {
		o.AllowedOrigin = "*"
	}
	return o
}

// Hub owns the live websocket connections and feeds their messages into
// the room registry. It implements room.Broadcaster.
type Hub struct {
	mu          sync.RWMutex
	clients     map[string]*client
	roomManager RoomManager
	opts        Options
	upgrader    websocket.Upgrader
}

func NewHub(roomManager RoomManager, opts Options) *Hub {
	opts = opts.withDefaults()
	h := &Hub{
		clients:     make(map[string]*client),
		roomManager: roomManager,
		opts:        opts,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return h.opts.AllowedOrigin == "*" || origin == "" || origin == h.opts.AllowedOrigin
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", c.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	cl := newClient(uuid.NewString(), conn, h.opts.SendBuffer)
	h.register(cl)
	log.Info().Str("conn", cl.id).Str("remote", c.ClientIP()).Msg("connected")

	h.Send(cl.id, relay.Connected{ID: cl.id})
	go h.writePump(cl)
	h.readPump(cl)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.id] == c {
		delete(h.clients, c.id)
	}
}

// Send queues msg for connID. Unknown ids are ignored; a connection whose
// queue is full is closed.
func (h *Hub) Send(connID string, msg relay.ServerMessage) {
	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	data, err := relay.EncodeServer(msg)
	if err != nil {
		log.Error().Err(err).Str("conn", connID).Msg("encode message")
		return
	}
	if !c.enqueue(data) {
		log.Warn().Str("conn", connID).Msg("send queue full, dropping connection")
		c.close()
	}
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		h.roomManager.Disconnect(c.id)
		c.close()
		log.Info().Str("conn", c.id).Msg("disconnected")
	}()

	deadline := 2 * h.opts.PingInterval
	c.conn.SetReadLimit(h.opts.MaxFrameBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(deadline))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(deadline))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("conn", c.id).Msg("read failed")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(deadline))

		msg, err := relay.DecodeClient(data)
		if err != nil {
			log.Warn().Err(err).Str("conn", c.id).Msg("bad message ignored")
			continue
		}
		h.dispatch(c, msg)
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.opts.PingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug().Err(err).Str("conn", c.id).Msg("write failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func roomOf(msg relay.ClientMessage) string {
	switch m := msg.(type) {
	case relay.Join:
		return m.RoomID
	case relay.Leave:
		return m.RoomID
	case relay.PublishState:
		return m.RoomID
	case relay.RequestRematch:
		return m.RoomID
	case relay.DeclineRematch:
		return m.RoomID
	}
	return ""
}

func (h *Hub) dispatch(c *client, msg relay.ClientMessage) {
	roomID := roomOf(msg)
	if roomID == "" {
		log.Warn().Str("conn", c.id).Type("message", msg).Msg("message without room id ignored")
		return
	}

	switch m := msg.(type) {
	case relay.Join:
		h.roomManager.Join(roomID, c.id)
	case relay.Leave:
		h.roomManager.Leave(roomID, c.id)
	case relay.PublishState:
		h.roomManager.PublishState(roomID, c.id, m.State)
	case relay.RequestRematch:
		h.roomManager.RequestRematch(roomID, c.id)
	case relay.DeclineRematch:
		h.roomManager.DeclineRematch(roomID, c.id)
	default:
		log.Warn().Str("conn", c.id).Type("message", m).Msg("unhandled message")
	}
}
