package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"izmarket/internal/domain"
	"izmarket/internal/models"
	"izmarket/internal/repository"
	"izmarket/internal/ws"

	"gorm.io/gorm"
)

// ChannelName derives the realtime channel for a conversation. The
// smaller user id always comes first so both participants compute the
// same name; articleID 0 is the no-article sentinel.
func ChannelName(userA, userB, articleID uint) string {
	lo, hi := userA, userB
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("chat_%d_%d_%d", lo, hi, articleID)
}

// ConversationSummary is the derived per-(peer, article) inbox entry.
type ConversationSummary struct {
	PeerID       uint      `json:"peer_id"`
	PeerName     string    `json:"peer_name"`
	ArticleID    uint      `json:"article_id"`
	ArticleTitle string    `json:"article_title"`
	Avatar       string    `json:"avatar"`
	LastMessage  string    `json:"last_message"`
	Timestamp    time.Time `json:"timestamp"`
	Unread       int       `json:"unread"`
}

// ConversationService persists messages, derives conversation
// summaries and unread counts, and pushes new messages to live
// subscribers. Broadcast is best-effort; the message table stays the
// source of truth.
type ConversationService struct {
	msgRepo     *repository.MessageRepository
	userRepo    *repository.UserRepository
	articleRepo *repository.ArticleRepository
	hub         *ws.Hub
}

func NewConversationService(msgRepo *repository.MessageRepository, userRepo *repository.UserRepository, articleRepo *repository.ArticleRepository, hub *ws.Hub) *ConversationService {
	return &ConversationService{msgRepo: msgRepo, userRepo: userRepo, articleRepo: articleRepo, hub: hub}
}

// SendMessage validates, persists, then broadcasts the new message to
// the conversation channel. No subscriber is not an error.
func (s *ConversationService) SendMessage(senderID, receiverID, articleID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty message content", domain.ErrValidation)
	}
	if receiverID == 0 {
		return nil, fmt.Errorf("%w: receiver_id required", domain.ErrValidation)
	}
	if _, err := s.userRepo.GetByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: receiver %d", domain.ErrNotFound, receiverID)
		}
		return nil, err
	}
	if articleID != 0 {
		if _, err := s.articleRepo.GetByID(articleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: article %d", domain.ErrNotFound, articleID)
			}
			return nil, err
		}
	}

	m := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		ArticleID:  articleID,
		Content:    content,
		Read:       false,
	}
	if err := s.msgRepo.Create(m); err != nil {
		return nil, err
	}

	senderName := ""
	if sender, err := s.userRepo.GetByID(senderID); err == nil {
		senderName = sender.FullName()
	}
	s.hub.Publish(ChannelName(senderID, receiverID, articleID), map[string]interface{}{
		"type":        "message",
		"id":          m.ID,
		"sender_id":   m.SenderID,
		"receiver_id": m.ReceiverID,
		"article_id":  m.ArticleID,
		"content":     m.Content,
		"timestamp":   m.CreatedAt,
		"sender_name": senderName,
	})
	return m, nil
}

// ListConversations scans the user's messages newest-first and folds
// them into one summary per (peer, article) pair. The first message
// seen for a pair is its latest, so last_message/timestamp come from
// it; unread counts accumulate over the whole history. Peers that no
// longer exist are skipped.
func (s *ConversationService) ListConversations(userID uint) ([]ConversationSummary, error) {
	messages, err := s.msgRepo.ListInvolving(userID)
	if err != nil {
		return nil, err
	}

	type slot struct{ index int }
	seen := make(map[string]slot)
	peers := make(map[uint]*models.User)
	articles := make(map[uint]*models.Article)
	summaries := make([]ConversationSummary, 0)

	for i := range messages {
		m := &messages[i]
		peerID := m.ReceiverID
		if peerID == userID {
			peerID = m.SenderID
		}
		key := fmt.Sprintf("%d_%d", peerID, m.ArticleID)

		if _, ok := seen[key]; !ok {
			peer, ok := peers[peerID]
			if !ok {
				peer, _ = s.userRepo.GetByID(peerID)
				peers[peerID] = peer
			}
			if peer == nil {
				continue
			}
			title := ""
			avatar := domain.PlaceholderImage
			if m.ArticleID != 0 {
				article, ok := articles[m.ArticleID]
				if !ok {
					article, _ = s.articleRepo.GetByID(m.ArticleID)
					articles[m.ArticleID] = article
				}
				if article != nil {
					title = article.Title
					avatar = article.Thumbnail(domain.PlaceholderImage)
				} else {
					// article deleted; the thread survives with a fallback title
					title = "Article inconnu"
				}
			}
			seen[key] = slot{index: len(summaries)}
			summaries = append(summaries, ConversationSummary{
				PeerID:       peerID,
				PeerName:     peer.FullName(),
				ArticleID:    m.ArticleID,
				ArticleTitle: title,
				Avatar:       avatar,
				LastMessage:  m.Content,
				Timestamp:    m.CreatedAt,
			})
		}
		if m.ReceiverID == userID && !m.Read {
			summaries[seen[key].index].Unread++
		}
	}
	return summaries, nil
}

// ListMessages returns the full two-way history with peer, oldest
// first, and marks everything addressed to the user as read. The
// read-marking deliberately spans all articles with that peer, broader
// than the per-(peer, article) conversation key.
func (s *ConversationService) ListMessages(userID, peerID uint) ([]models.Message, error) {
	messages, err := s.msgRepo.ListBetween(userID, peerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.msgRepo.MarkReadFrom(userID, peerID); err != nil {
		return nil, err
	}
	for i := range messages {
		if messages[i].ReceiverID == userID {
			messages[i].Read = true
		}
	}
	return messages, nil
}

// MarkRead marks unread messages from peer as read without returning
// bodies.
func (s *ConversationService) MarkRead(userID, peerID uint) error {
	_, err := s.msgRepo.MarkReadFrom(userID, peerID)
	return err
}

// UnreadCount is the user's global unread total across all peers and
// articles.
func (s *ConversationService) UnreadCount(userID uint) (int64, error) {
	return s.msgRepo.CountUnread(userID)
}
