package handler

import (
	"net/http"
	"strconv"

	"izmarket/internal/middleware"
	"izmarket/internal/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	conversations *service.ConversationService
}

func NewMessageHandler(conversations *service.ConversationService) *MessageHandler {
	return &MessageHandler{conversations: conversations}
}

// Send handles POST /api/messages.
func (h *MessageHandler) Send(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		ReceiverID uint   `json:"receiver_id" binding:"required"`
		ArticleID  uint   `json:"article_id"`
		Content    string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiver_id and content are required"})
		return
	}
	m, err := h.conversations.SendMessage(userID, req.ReceiverID, req.ArticleID, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// ListConversations handles GET /api/conversations.
func (h *MessageHandler) ListConversations(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.conversations.ListConversations(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListWithPeer handles GET /api/messages/:peer_id. Side effect: every
// message addressed to the caller in this history is marked read.
func (h *MessageHandler) ListWithPeer(c *gin.Context) {
	userID := middleware.GetUserID(c)
	peerID, err := strconv.ParseUint(c.Param("peer_id"), 10, 64)
	if err != nil || peerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer_id"})
		return
	}
	messages, err := h.conversations.ListMessages(userID, uint(peerID))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MarkRead handles POST /api/messages/:peer_id/read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	peerID, err := strconv.ParseUint(c.Param("peer_id"), 10, 64)
	if err != nil || peerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer_id"})
		return
	}
	if err := h.conversations.MarkRead(userID, uint(peerID)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UnreadCount handles GET /api/conversations/unread-count.
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	count, err := h.conversations.UnreadCount(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
