package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Article struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"size:100" json:"category"`
	City        string          `gorm:"size:100" json:"city"`
	Condition   string          `gorm:"size:50;default:'Neuf'" json:"condition"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Status      string          `gorm:"size:50;not null;default:'pending';index" json:"status"` // pending | approved | rejected (+ legacy validated)
	Photos      []string        `gorm:"serializer:json" json:"photos"`
	CreatedAt   time.Time       `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Article) TableName() string { return "articles" }

// Thumbnail returns the first photo reference, or fallback when none.
func (a *Article) Thumbnail(fallback string) string {
	if len(a.Photos) > 0 {
		return a.Photos[0]
	}
	return fallback
}
