package models

import "time"

// Message is one chat message. Messages sharing the unordered
// {sender, receiver} pair and the same article form a conversation; the
// conversation itself is derived at read time and has no table.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index:idx_messages_thread" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index:idx_messages_thread" json:"receiver_id"`
	ArticleID  uint      `gorm:"index:idx_messages_thread" json:"article_id"` // 0 = no article context
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt  time.Time `gorm:"index:idx_messages_thread" json:"created_at"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`
}

func (Message) TableName() string { return "messages" }
