package repository

import (
	"izmarket/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at desc").Find(&users).Error
	return users, err
}

// SetActive flips the is_active flag. Existence is checked separately
// from the update: mysql reports changed rows, not matched rows, so a
// no-op retry must not read as a missing row.
func (r *UserRepository) SetActive(id uint, active bool) error {
	var u models.User
	if err := r.db.Select("id").First(&u, id).Error; err != nil {
		return err
	}
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", active).Error
}

// UpdateFields applies a partial update to the user row.
func (r *UserRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	var u models.User
	if err := r.db.Select("id").First(&u, id).Error; err != nil {
		return err
	}
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteCascade removes the user and everything they own inside one
// transaction: articles, cotisations, purchases, and all messages they
// sent or received. Balance credits already applied are not revisited.
func (r *UserRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Article{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Cotisation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("buyer_id = ?", id).Delete(&models.Purchase{}).Error; err != nil {
			return err
		}
		return tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&models.Message{}).Error
	})
}
