package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cotisation is a user-submitted deposit awaiting admin validation.
// AmountReceived, not AmountSent, is what credits the balance once the
// record transitions to valid.
type Cotisation struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	AmountSent     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_sent"`
	AmountReceived decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_received"`
	Status         string          `gorm:"size:20;not null;default:'pending';index" json:"status"` // pending | valid | rejected
	CreatedAt      time.Time       `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Cotisation) TableName() string { return "cotisations" }
