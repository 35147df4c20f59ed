package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"matchup/helper"
	"matchup/metrics"
	"matchup/models"
	"matchup/services"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Presence records whether a user has a live connection.
type Presence interface {
	SetOnline(ctx context.Context, id primitive.ObjectID, online bool) error
}

// Frame is what the hub writes to clients.
type Frame struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks the websocket connections of each user and pushes notifications
// to them. A user may hold several connections; they count as online until
// the last one closes.
type Hub struct {
	mut      sync.Mutex
	clients  map[primitive.ObjectID]map[*client]struct{}
	presence Presence
	metrics  *metrics.Metrics
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHub(presence Presence, m *metrics.Metrics, origins []string, log zerolog.Logger) *Hub {
	h := &Hub{
		clients:  make(map[primitive.ObjectID]map[*client]struct{}),
		presence: presence,
		metrics:  m,
		log:      log.With().Str("component", "hub").Logger(),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
		},
	}
	return h
}

var _ services.Notifier = (*Hub)(nil)

func (h *Hub) HandleWS(c *gin.Context) {
	claims, err := helper.CurrentClaims(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	userID, err := services.ParseID("User", claims.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("failed to upgrade connection")
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if first := h.register(userID, cl); first {
		h.setOnline(userID, true)
	}
	h.log.Debug().Str("user", userID.Hex()).Str("remote", conn.RemoteAddr().String()).Msg("client connected")

	go h.writeLoop(cl)
	h.readLoop(cl)

	if last := h.unregister(userID, cl); last {
		h.setOnline(userID, false)
	}
	h.log.Debug().Str("user", userID.Hex()).Msg("client disconnected")
}

// Notify pushes a notification to every open connection of the recipient.
// Clients that are not keeping up miss the frame.
func (h *Hub) Notify(recipient primitive.ObjectID, n models.Notification) {
	msg, err := json.Marshal(Frame{Action: "notification", Data: n})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode notification")
		return
	}

	h.mut.Lock()
	defer h.mut.Unlock()

	for cl := range h.clients[recipient] {
		select {
		case cl.send <- msg:
		default:
			h.log.Warn().Str("user", recipient.Hex()).Msg("dropping frame for slow client")
		}
	}
}

// Connections reports how many connections a user has open.
func (h *Hub) Connections(userID primitive.ObjectID) int {
	h.mut.Lock()
	defer h.mut.Unlock()
	return len(h.clients[userID])
}

// Close ends every open connection.
func (h *Hub) Close() {
	h.mut.Lock()
	defer h.mut.Unlock()

	for _, set := range h.clients {
		for cl := range set {
			_ = cl.conn.Close()
		}
	}
}

func (h *Hub) register(userID primitive.ObjectID, cl *client) bool {
	h.mut.Lock()
	defer h.mut.Unlock()

	set, ok := h.clients[userID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[userID] = set
	}
	set[cl] = struct{}{}
	if h.metrics != nil {
		h.metrics.HubConnected()
	}
	return len(set) == 1
}

func (h *Hub) unregister(userID primitive.ObjectID, cl *client) bool {
	h.mut.Lock()
	defer h.mut.Unlock()

	set := h.clients[userID]
	if _, ok := set[cl]; !ok {
		return false
	}
	delete(set, cl)
	close(cl.send)
	if h.metrics != nil {
		h.metrics.HubDisconnected()
	}
	if len(set) == 0 {
		delete(h.clients, userID)
		return true
	}
	return false
}

func (h *Hub) setOnline(userID primitive.ObjectID, online bool) {
	if h.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := h.presence.SetOnline(ctx, userID, online); err != nil {
		h.log.Warn().Err(err).Str("user", userID.Hex()).Bool("online", online).Msg("failed to update presence")
	}
}

// readLoop drains the connection until it closes. Clients only receive.
func (h *Hub) readLoop(cl *client) {
	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug().Err(err).Msg("read error")
			}
			return
		}
	}
}

func (h *Hub) writeLoop(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug().Err(err).Msg("write error")
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
