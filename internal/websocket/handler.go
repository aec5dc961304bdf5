package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a new connection to the activity hub and blocks until the
// peer disconnects.
func ServeWs(hub *Hub, c *websocket.Conn, clientId string) {
	client := &Client{Hub: hub, Conn: c, ClientId: clientId, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
