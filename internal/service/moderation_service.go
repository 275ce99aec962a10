package service

import (
	"errors"
	"fmt"

	"izmarket/internal/domain"
	"izmarket/internal/models"
	"izmarket/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ModerationService applies admin-gated transitions over users,
// articles, and cotisations. Every operation checks the actor's role
// before touching anything; cotisation transitions delegate to the
// ledger so the credit invariant lives in one place.
type ModerationService struct {
	userRepo     *repository.UserRepository
	articleRepo  *repository.ArticleRepository
	cotRepo      *repository.CotisationRepository
	purchaseRepo *repository.PurchaseRepository
	ledger       *LedgerService
}

func NewModerationService(
	userRepo *repository.UserRepository,
	articleRepo *repository.ArticleRepository,
	cotRepo *repository.CotisationRepository,
	purchaseRepo *repository.PurchaseRepository,
	ledger *LedgerService,
) *ModerationService {
	return &ModerationService{
		userRepo:     userRepo,
		articleRepo:  articleRepo,
		cotRepo:      cotRepo,
		purchaseRepo: purchaseRepo,
		ledger:       ledger,
	}
}

func (s *ModerationService) requireAdmin(actorID uint) error {
	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		return fmt.Errorf("%w: not an admin", domain.ErrPermission)
	}
	if !actor.IsAdmin() || !actor.IsActive {
		return fmt.Errorf("%w: not an admin", domain.ErrPermission)
	}
	return nil
}

// UserAction handles activate / deactivate / delete. Delete cascades to
// everything the user owns.
func (s *ModerationService) UserAction(actorID, userID uint, action string) error {
	if err := s.requireAdmin(actorID); err != nil {
		return err
	}
	var err error
	switch action {
	case "activate":
		err = s.userRepo.SetActive(userID, true)
	case "deactivate":
		err = s.userRepo.SetActive(userID, false)
	case "delete":
		err = s.userRepo.DeleteCascade(userID)
	default:
		return fmt.Errorf("%w: unknown action %q", domain.ErrValidation, action)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	return err
}

// UpdateUser applies a partial edit to the user's contact fields.
func (s *ModerationService) UpdateUser(actorID, userID uint, fields map[string]interface{}) error {
	if err := s.requireAdmin(actorID); err != nil {
		return err
	}
	allowed := map[string]bool{"first_name": true, "last_name": true, "email": true, "phone": true}
	safe := make(map[string]interface{})
	for k, v := range fields {
		if allowed[k] {
			safe[k] = v
		}
	}
	if len(safe) == 0 {
		return fmt.Errorf("%w: no valid fields to update", domain.ErrValidation)
	}
	err := s.userRepo.UpdateFields(userID, safe)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	return err
}

// ArticleAction handles approve / reject / delete.
func (s *ModerationService) ArticleAction(actorID, articleID uint, action string) error {
	if err := s.requireAdmin(actorID); err != nil {
		return err
	}
	var err error
	switch action {
	case "approve":
		err = s.articleRepo.Updates(articleID, map[string]interface{}{"status": domain.ArticleApproved})
	case "reject":
		err = s.articleRepo.Updates(articleID, map[string]interface{}{"status": domain.ArticleRejected})
	case "delete":
		err = s.articleRepo.Delete(articleID)
	default:
		return fmt.Errorf("%w: unknown action %q", domain.ErrValidation, action)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: article %d", domain.ErrNotFound, articleID)
	}
	return err
}

// UpdateArticle applies a partial edit: only supplied safe fields
// change.
func (s *ModerationService) UpdateArticle(actorID, articleID uint, fields map[string]interface{}) error {
	if err := s.requireAdmin(actorID); err != nil {
		return err
	}
	allowed := map[string]bool{"title": true, "description": true, "price": true, "category": true, "status": true}
	safe := make(map[string]interface{})
	for k, v := range fields {
		if allowed[k] {
			safe[k] = v
		}
	}
	if len(safe) == 0 {
		return fmt.Errorf("%w: no valid fields to update", domain.ErrValidation)
	}
	err := s.articleRepo.Updates(articleID, safe)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: article %d", domain.ErrNotFound, articleID)
	}
	return err
}

// CotisationAction handles validate / reject / delete by delegating to
// the ledger. Validate returns the owner's new balance.
func (s *ModerationService) CotisationAction(actorID, cotisationID uint, action string) (decimal.Decimal, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return decimal.Zero, err
	}
	switch action {
	case "validate":
		return s.ledger.SetStatus(cotisationID, domain.CotisationValid)
	case "reject":
		return s.ledger.SetStatus(cotisationID, domain.CotisationRejected)
	case "delete":
		return decimal.Zero, s.ledger.Delete(cotisationID)
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown action %q", domain.ErrValidation, action)
	}
}

// RecomputeBalance exposes the ledger's repair path on the admin
// surface only.
func (s *ModerationService) RecomputeBalance(actorID, userID uint) (decimal.Decimal, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return decimal.Zero, err
	}
	return s.ledger.RecomputeBalance(userID)
}

// AdminData is the console's aggregate payload.
type AdminData struct {
	AdminName        string              `json:"admin_name"`
	Users            []models.User       `json:"users"`
	Articles         []models.Article    `json:"articles"`
	Cotisations      []models.Cotisation `json:"cotisations"`
	Purchases        []models.Purchase   `json:"purchases"`
	TotalCotisations decimal.Decimal     `json:"total_cotisations"`
}

func (s *ModerationService) GetAdminData(actorID uint) (*AdminData, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	articles, err := s.articleRepo.ListAll()
	if err != nil {
		return nil, err
	}
	cotisations, err := s.cotRepo.ListAll()
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.ListAll()
	if err != nil {
		return nil, err
	}
	total, err := s.cotRepo.TotalValidReceived()
	if err != nil {
		return nil, err
	}
	return &AdminData{
		AdminName:        actor.FirstName,
		Users:            users,
		Articles:         articles,
		Cotisations:      cotisations,
		Purchases:        purchases,
		TotalCotisations: total,
	}, nil
}
