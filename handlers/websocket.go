package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsReadLimit    = 1024
	wsWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SliderMessage is sent by the dashboard each time the slider moves.
type SliderMessage struct {
	Threshold *float64 `json:"threshold"`
}

// DashboardWebSocket answers every slider message with the report for the
// requested threshold. Bad messages get an error frame and keep the
// connection open.
func DashboardWebSocket(h *AnalyticsHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		conn.SetReadLimit(wsReadLimit)

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("ws read error: %v", err)
				}
				return
			}

			var msg SliderMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				if !writeFrame(conn, gin.H{"error": "invalid message: " + err.Error()}) {
					return
				}
				continue
			}
			if msg.Threshold == nil {
				if !writeFrame(conn, gin.H{"error": "missing threshold"}) {
					return
				}
				continue
			}
			if err := checkThreshold(*msg.Threshold); err != nil {
				if !writeFrame(conn, gin.H{"error": err.Error()}) {
					return
				}
				continue
			}

			report, err := h.Report(ctx, *msg.Threshold)
			if err != nil {
				if !writeFrame(conn, gin.H{"error": err.Error()}) {
					return
				}
				continue
			}
			if !writeFrame(conn, report) {
				return
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, v interface{}) bool {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(v); err != nil {
		log.Printf("ws write error: %v", err)
		return false
	}
	return true
}
