package repository

import (
	"izmarket/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(m *models.Message) error {
	return r.db.Create(m).Error
}

// ListInvolving returns every message the user sent or received, newest
// first. Conversation summaries are derived from this scan.
func (r *MessageRepository) ListInvolving(userID uint) ([]models.Message, error) {
	var list []models.Message
	err := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc, id desc").
		Find(&list).Error
	return list, err
}

// ListBetween returns the two-way history between two users across all
// articles, oldest first.
func (r *MessageRepository) ListBetween(userID, peerID uint) ([]models.Message, error) {
	var list []models.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at asc, id asc").
		Find(&list).Error
	return list, err
}

// MarkReadFrom marks every unread message from peer to user as read and
// reports how many rows changed.
func (r *MessageRepository) MarkReadFrom(userID, peerID uint) (int64, error) {
	res := r.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND `read` = ?", peerID, userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *MessageRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND `read` = ?", userID, false).
		Count(&count).Error
	return count, err
}
