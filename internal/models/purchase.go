package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is a read-only audit record of a completed sale.
type Purchase struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	BuyerID       uint            `gorm:"not null;index" json:"buyer_id"`
	ArticleID     uint            `gorm:"not null;index" json:"article_id"`
	TransactionID string          `gorm:"uniqueIndex;size:100" json:"transaction_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`

	Buyer   User    `gorm:"foreignKey:BuyerID" json:"-"`
	Article Article `gorm:"foreignKey:ArticleID" json:"-"`
}

func (Purchase) TableName() string { return "purchases" }
