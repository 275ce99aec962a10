package repository

import (
	"izmarket/internal/domain"
	"izmarket/internal/models"

	"gorm.io/gorm"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(a *models.Article) error {
	return r.db.Create(a).Error
}

func (r *ArticleRepository) GetByID(id uint) (*models.Article, error) {
	var a models.Article
	err := r.db.Preload("User").First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListVisible returns buyer-visible articles, newest first.
func (r *ArticleRepository) ListVisible() ([]models.Article, error) {
	var list []models.Article
	err := r.db.Preload("User").
		Where("status IN ?", []string{domain.ArticleApproved, domain.ArticleValidated}).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *ArticleRepository) ListByUser(userID uint) ([]models.Article, error) {
	var list []models.Article
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *ArticleRepository) ListAll() ([]models.Article, error) {
	var list []models.Article
	err := r.db.Preload("User").Order("created_at desc").Find(&list).Error
	return list, err
}

// Updates applies a partial update. Existence is checked separately
// from the update: mysql reports changed rows, not matched rows, so a
// retry writing identical values must not read as a missing row.
func (r *ArticleRepository) Updates(id uint, fields map[string]interface{}) error {
	var a models.Article
	if err := r.db.Select("id").First(&a, id).Error; err != nil {
		return err
	}
	return r.db.Model(&models.Article{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the article row. Messages referencing it are left in
// place; conversations fall back to the placeholder thumbnail.
func (r *ArticleRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Article{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
