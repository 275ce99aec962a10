package models

import (
	"time"

	"izmarket/internal/domain"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UID          string          `gorm:"uniqueIndex;size:64;not null" json:"uid"`
	FirstName    string          `gorm:"size:100;not null" json:"first_name"`
	LastName     string          `gorm:"size:100;not null" json:"last_name"`
	Email        string          `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Phone        string          `gorm:"size:50" json:"phone"`
	PasswordHash string          `gorm:"size:255;not null" json:"-"`
	Balance      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance"`
	Role         string          `gorm:"size:20;not null;default:'user';index" json:"role"` // user | admin
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Articles    []Article    `gorm:"foreignKey:UserID" json:"-"`
	Cotisations []Cotisation `gorm:"foreignKey:UserID" json:"-"`
	Purchases   []Purchase   `gorm:"foreignKey:BuyerID" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }

// FullName is the display name used in conversation summaries and admin
// listings.
func (u *User) FullName() string { return u.FirstName + " " + u.LastName }
