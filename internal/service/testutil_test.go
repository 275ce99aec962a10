package service

import (
	"testing"

	"izmarket/internal/database"
	"izmarket/internal/domain"
	"izmarket/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, firstName, email, role string) *models.User {
	t.Helper()
	u := &models.User{
		UID:          uuid.New().String(),
		FirstName:    firstName,
		LastName:     "Test",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createTestArticle(t *testing.T, db *gorm.DB, userID uint, title string, photos []string) *models.Article {
	t.Helper()
	a := &models.Article{
		UserID: userID,
		Title:  title,
		Status: domain.ArticleApproved,
		Photos: photos,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}
