package repository

import (
	"izmarket/internal/domain"
	"izmarket/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CotisationRepository struct {
	db *gorm.DB
}

func NewCotisationRepository(db *gorm.DB) *CotisationRepository {
	return &CotisationRepository{db: db}
}

func (r *CotisationRepository) Create(c *models.Cotisation) error {
	return r.db.Create(c).Error
}

func (r *CotisationRepository) GetByID(id uint) (*models.Cotisation, error) {
	var c models.Cotisation
	err := r.db.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CotisationRepository) ListByUser(userID uint) ([]models.Cotisation, error) {
	var list []models.Cotisation
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *CotisationRepository) ListAll() ([]models.Cotisation, error) {
	var list []models.Cotisation
	err := r.db.Preload("User").Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *CotisationRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Cotisation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumValidReceived totals amount_received over a user's valid
// cotisations. Used only by the balance-recompute repair path.
func (r *CotisationRepository) SumValidReceived(userID uint) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.Model(&models.Cotisation{}).
		Select("COALESCE(SUM(amount_received), 0)").
		Where("user_id = ? AND status = ?", userID, domain.CotisationValid).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// TotalValidReceived totals amount_received across every user's valid
// cotisations, for the admin dashboard.
func (r *CotisationRepository) TotalValidReceived() (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.Model(&models.Cotisation{}).
		Select("COALESCE(SUM(amount_received), 0)").
		Where("status = ?", domain.CotisationValid).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
