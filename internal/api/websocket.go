package api

import (
	"encoding/json"
	"net/http"
	"time"

	"orderdesk/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	// eventSession carries the session view sent when a stream opens.
	eventSession = "session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // terminals connect from anywhere on the shop network
	},
}

// eventStream forwards one hub subscription to a websocket client
type eventStream struct {
	conn   *websocket.Conn
	events <-chan notify.Event
	cancel func()
	logger *zap.Logger
}

// StreamEvents upgrades the request and pushes the session's toasts and
// receipts until either side goes away.
func (a *POSAPI) StreamEvents(c *gin.Context) {
	s, ok := a.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", zap.String("session_id", s.id), zap.Error(err))
		return
	}

	events, cancel := a.hub.Subscribe(s.id)
	stream := &eventStream{
		conn:   conn,
		events: events,
		cancel: cancel,
		logger: a.logger.With(zap.String("session_id", s.id)),
	}

	s.mu.Lock()
	initial := notify.Event{Type: eventSession, Payload: s.view()}
	s.mu.Unlock()

	go stream.writePump(initial)
	go stream.readPump()
}

// readPump only watches for close frames and pongs; clients do not send
// commands over the stream.
func (es *eventStream) readPump() {
	defer func() {
		es.cancel()
		es.conn.Close()
	}()

	es.conn.SetReadLimit(4096)
	es.conn.SetReadDeadline(time.Now().Add(pongWait))
	es.conn.SetPongHandler(func(string) error {
		es.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := es.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				es.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
	}
}

func (es *eventStream) writePump(initial notify.Event) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		es.cancel()
		es.conn.Close()
	}()

	if err := es.write(initial); err != nil {
		return
	}

	for {
		select {
		case event, ok := <-es.events:
			if !ok {
				// Session closed or subscription cancelled
				es.conn.SetWriteDeadline(time.Now().Add(writeWait))
				es.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := es.write(event); err != nil {
				return
			}
		case <-ticker.C:
			es.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := es.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (es *eventStream) write(event notify.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		es.logger.Error("marshal event", zap.String("type", event.Type), zap.Error(err))
		return nil
	}
	es.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return es.conn.WriteMessage(websocket.TextMessage, data)
}
