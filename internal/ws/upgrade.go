package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"gogett/config"
	"gogett/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type locationPush struct {
	OrderID uint    `json:"order_id"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// UpgradeLocationWS upgrades the connection for the live-location channel.
// Couriers push {order_id, lat, lng} frames; every connection receives the
// broadcast markers.
func UpgradeLocationWS(cfg *config.JWTConfig, hub *LocationHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		token := c.Query("token")
		if token == "" {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"token required"}`))
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
			return
		}
		client := &Client{
			CourierID: claims.CourierID,
			Send:      make(chan []byte, 256),
		}
		hub.Register(client)
		defer client.Close()
		// Send the current markers before streaming updates.
		data, _ := json.Marshal(map[string]interface{}{"type": "markers", "markers": hub.Markers()})
		client.trySend(data)
		go writePump(client, conn)
		readPump(conn, hub, claims.CourierID)
	}
}

// writePump copies messages from client.Send to the connection.
func writePump(c *Client, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn, hub *LocationHub, courierID uint) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var push locationPush
		if err := json.Unmarshal(data, &push); err != nil || push.OrderID == 0 {
			continue
		}
		hub.UpdateLocation(push.OrderID, courierID, push.Lat, push.Lng)
	}
}
