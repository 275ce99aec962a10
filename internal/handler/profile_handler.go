package handler

import (
	"net/http"

	"izmarket/internal/domain"
	"izmarket/internal/middleware"
	"izmarket/internal/repository"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userRepo     *repository.UserRepository
	articleRepo  *repository.ArticleRepository
	purchaseRepo *repository.PurchaseRepository
	cotRepo      *repository.CotisationRepository
}

func NewProfileHandler(
	userRepo *repository.UserRepository,
	articleRepo *repository.ArticleRepository,
	purchaseRepo *repository.PurchaseRepository,
	cotRepo *repository.CotisationRepository,
) *ProfileHandler {
	return &ProfileHandler{
		userRepo:     userRepo,
		articleRepo:  articleRepo,
		purchaseRepo: purchaseRepo,
		cotRepo:      cotRepo,
	}
}

// Get handles GET /api/me/profile: the user plus their articles,
// purchases, and cotisation history.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	articles, err := h.articleRepo.ListByUser(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	articleViews := make([]gin.H, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		articleViews = append(articleViews, gin.H{
			"id":     a.ID,
			"title":  a.Title,
			"image":  a.Thumbnail(domain.PlaceholderImage),
			"status": a.Status,
			"valid":  domain.ArticleVisible(a.Status),
		})
	}

	purchases, err := h.purchaseRepo.ListByBuyer(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	purchaseViews := make([]gin.H, 0, len(purchases))
	for i := range purchases {
		p := &purchases[i]
		purchaseViews = append(purchaseViews, gin.H{
			"title":  p.Article.Title,
			"image":  p.Article.Thumbnail(domain.PlaceholderImage),
			"amount": p.Amount,
		})
	}

	cotisations, err := h.cotRepo.ListByUser(userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          u.ID,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"email":       u.Email,
		"phone":       u.Phone,
		"balance":     u.Balance,
		"articles":    articleViews,
		"purchases":   purchaseViews,
		"cotisations": cotisations,
	})
}
