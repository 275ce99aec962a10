package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"izmarket/config"
	"izmarket/internal/auth"
	"izmarket/internal/service"
	"izmarket/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	chatWriteWait  = 10 * time.Second
	chatPongWait   = 60 * time.Second
	chatPingPeriod = (chatPongWait * 9) / 10
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// UpgradeChatWS upgrades to WebSocket for a conversation; query: token,
// peer_id, article_id (optional). Both participants derive the same
// channel name, so no room discovery is needed.
func UpgradeChatWS(cfg *config.JWTConfig, hub *ws.Hub, conversations *service.ConversationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		peerIDStr := c.Query("peer_id")
		if token == "" || peerIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token and peer_id required"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		peerID, err := strconv.ParseUint(peerIDStr, 10, 64)
		if err != nil || peerID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer_id"})
			return
		}
		articleID, _ := strconv.ParseUint(c.DefaultQuery("article_id", "0"), 10, 64)

		conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		channel := service.ChannelName(claims.UserID, uint(peerID), uint(articleID))
		client := ws.NewClient(claims.UserID)
		room := hub.GetOrCreateRoom(channel)
		room.Join(client)
		log.Printf("user %d joined channel %s", claims.UserID, channel)
		room.Broadcast(client, map[string]interface{}{
			"type": "status",
			"msg":  "user " + strconv.FormatUint(uint64(claims.UserID), 10) + " joined the chat",
		})
		defer func() {
			room.Leave(client)
			client.Close()
			hub.RemoveRoomIfEmpty(channel)
		}()

		conn.SetReadDeadline(time.Now().Add(chatPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(chatPongWait))
			return nil
		})
		go func() {
			ticker := time.NewTicker(chatPingPeriod)
			defer ticker.Stop()
			for {
				select {
				case msg, ok := <-client.Send:
					if !ok {
						return
					}
					conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
					if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				case <-ticker.C:
					conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				}
			}
		}()
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var msg struct {
				Type    string `json:"type"`
				Content string `json:"content"`
			}
			if json.Unmarshal(raw, &msg) != nil || msg.Type != "message" {
				continue
			}
			// SendMessage persists and broadcasts back to this room.
			if _, err := conversations.SendMessage(claims.UserID, uint(peerID), uint(articleID), msg.Content); err != nil {
				log.Printf("ws send_message from %d: %v", claims.UserID, err)
			}
		}
	}
}
