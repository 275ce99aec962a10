package repository

import (
	"izmarket/internal/models"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(p *models.Purchase) error {
	return r.db.Create(p).Error
}

func (r *PurchaseRepository) ListByBuyer(buyerID uint) ([]models.Purchase, error) {
	var list []models.Purchase
	err := r.db.Preload("Article").Where("buyer_id = ?", buyerID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *PurchaseRepository) ListAll() ([]models.Purchase, error) {
	var list []models.Purchase
	err := r.db.Preload("Article").Preload("Buyer").Order("created_at desc").Find(&list).Error
	return list, err
}
