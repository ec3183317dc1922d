package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"quarto/internal/relay"
)

// Conn is a websocket connection to the relay.
type Conn struct {
	ws *websocket.Conn
}

var _ Transport = (*Conn)(nil)

func Dial(ctx context.Context, url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Conn{ws: ws}, nil
}

func (c *Conn) Send(msg relay.ClientMessage) error {
	data, err := relay.EncodeClient(msg)
	if err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Receive blocks for the next message. Frames that fail to decode return an
// error wrapping relay.ErrUnknownEvent or relay.ErrMalformedMessage; the
// connection stays usable after those.
func (c *Conn) Receive() (relay.ServerMessage, error) {
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return nil, err
	}
	return relay.DecodeServer(data)
}

func (c *Conn) Close() error {
	deadline := time.Now().Add(time.Second)
	_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return c.ws.Close()
}

// Ticket is a freshly allocated room.
type Ticket struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateRoom asks the server at baseURL (http or https) for a new room.
func CreateRoom(ctx context.Context, baseURL string) (Ticket, error) {
	var t Ticket
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/create", nil)
	if err != nil {
		return t, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return t, fmt.Errorf("create room: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return t, fmt.Errorf("create room: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return t, fmt.Errorf("create room: %w", err)
	}
	return t, nil
}

// WebsocketURL maps an http(s) base url to the relay endpoint.
func WebsocketURL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/ws"
}
