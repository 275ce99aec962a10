package handler

import (
	"net/http"
	"strconv"
	"strings"

	"izmarket/internal/domain"
	"izmarket/internal/middleware"
	"izmarket/internal/models"
	"izmarket/internal/repository"
	"izmarket/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ArticleHandler struct {
	articleRepo *repository.ArticleRepository
	cloud       cloudinary.Client
}

func NewArticleHandler(articleRepo *repository.ArticleRepository, cloud cloudinary.Client) *ArticleHandler {
	return &ArticleHandler{articleRepo: articleRepo, cloud: cloud}
}

// Sell handles POST /api/sell: multipart listing creation. Photos go to
// the media store; the article starts pending until moderation.
func (h *ArticleHandler) Sell(c *gin.Context) {
	userID := middleware.GetUserID(c)

	title := strings.TrimSpace(c.PostForm("title"))
	priceStr := c.PostForm("price")
	if title == "" || priceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and price are required"})
		return
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil || price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	var photos []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["photos"] {
			f, err := file.Open()
			if err != nil {
				continue
			}
			folder := "izmarket/articles/" + strconv.FormatUint(uint64(userID), 10)
			publicID := "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
			url, _, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
			f.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "photo upload failed"})
				return
			}
			photos = append(photos, url)
		}
	}

	article := &models.Article{
		UserID:      userID,
		Title:       title,
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		City:        c.PostForm("city"),
		Condition:   c.DefaultPostForm("condition", "Neuf"),
		Price:       price,
		Photos:      photos,
		Status:      domain.ArticlePending,
	}
	if err := h.articleRepo.Create(article); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "article created, awaiting approval", "article": article})
}

// List handles GET /api/articles: buyer-visible listings only.
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.articleRepo.ListVisible()
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		photos := a.Photos
		if len(photos) == 0 {
			photos = []string{domain.PlaceholderImage}
		}
		out = append(out, gin.H{
			"id":          a.ID,
			"title":       a.Title,
			"description": a.Description,
			"category":    a.Category,
			"city":        a.City,
			"condition":   a.Condition,
			"price":       a.Price,
			"photos":      photos,
			"seller_name": a.User.FullName(),
			"seller_id":   a.UserID,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /api/articles/:id: full details with seller info.
func (h *ArticleHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}
	a, err := h.articleRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	images := a.Photos
	if len(images) == 0 {
		images = []string{domain.PlaceholderImage}
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          a.ID,
		"title":       a.Title,
		"description": a.Description,
		"price":       a.Price,
		"category":    a.Category,
		"condition":   a.Condition,
		"city":        a.City,
		"status":      a.Status,
		"images":      images,
		"vendor": gin.H{
			"id":   a.UserID,
			"name": a.User.FullName(),
		},
	})
}
