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

// LedgerService owns cotisation records and the single place user
// balances are mutated. The incremental credit inside SetStatus is the
// authoritative consistency model; RecomputeBalance exists only as an
// admin repair tool.
type LedgerService struct {
	db       *gorm.DB
	userRepo *repository.UserRepository
	cotRepo  *repository.CotisationRepository
}

func NewLedgerService(db *gorm.DB, userRepo *repository.UserRepository, cotRepo *repository.CotisationRepository) *LedgerService {
	return &LedgerService{db: db, userRepo: userRepo, cotRepo: cotRepo}
}

// CreateDeposit records a deposit request in pending status. Both
// amounts must be positive; the balance is untouched until an admin
// validates the cotisation.
func (s *LedgerService) CreateDeposit(userID uint, amountSent, amountReceived decimal.Decimal) (*models.Cotisation, error) {
	if !amountSent.IsPositive() {
		return nil, fmt.Errorf("%w: amount_sent must be positive", domain.ErrValidation)
	}
	if !amountReceived.IsPositive() {
		return nil, fmt.Errorf("%w: amount_received must be positive", domain.ErrValidation)
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
		}
		return nil, err
	}
	c := &models.Cotisation{
		UserID:         userID,
		AmountSent:     amountSent,
		AmountReceived: amountReceived,
		Status:         domain.CotisationPending,
	}
	if err := s.cotRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetStatus transitions a cotisation and returns the owner's balance
// after the transition. Moving into valid credits amount_received
// exactly once: the status write is guarded on the row not already
// being valid, so two racing validators cannot both apply the credit.
// Every other transition writes status only; credits are never
// reversed.
func (s *LedgerService) SetStatus(cotisationID uint, status string) (decimal.Decimal, error) {
	switch status {
	case domain.CotisationPending, domain.CotisationValid, domain.CotisationRejected:
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	cot, err := s.cotRepo.GetByID(cotisationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("%w: cotisation %d", domain.ErrNotFound, cotisationID)
		}
		return decimal.Zero, err
	}

	if status == domain.CotisationValid {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Cotisation{}).
				Where("id = ? AND status <> ?", cotisationID, domain.CotisationValid).
				Update("status", domain.CotisationValid)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: cotisation %d already valid", domain.ErrConflict, cotisationID)
			}
			credit := tx.Model(&models.User{}).
				Where("id = ?", cot.UserID).
				Update("balance", gorm.Expr("balance + ?", cot.AmountReceived))
			if credit.Error != nil {
				return credit.Error
			}
			if credit.RowsAffected == 0 {
				return fmt.Errorf("%w: user %d", domain.ErrNotFound, cot.UserID)
			}
			return nil
		})
		if err != nil {
			return decimal.Zero, err
		}
	} else {
		res := s.db.Model(&models.Cotisation{}).Where("id = ?", cotisationID).Update("status", status)
		if res.Error != nil {
			return decimal.Zero, res.Error
		}
	}

	owner, err := s.userRepo.GetByID(cot.UserID)
	if err != nil {
		return decimal.Zero, err
	}
	return owner.Balance, nil
}

// Delete removes the cotisation record. A credit already applied for a
// valid record stays applied; there is no compensating transaction.
func (s *LedgerService) Delete(cotisationID uint) error {
	err := s.cotRepo.Delete(cotisationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: cotisation %d", domain.ErrNotFound, cotisationID)
	}
	return err
}

// RecomputeBalance overwrites the user's balance with the sum of
// amount_received over their valid cotisations. Repair/audit tool only,
// never called on the normal request path. Note that deleting a valid
// cotisation makes this lossy relative to the incremental history.
func (s *LedgerService) RecomputeBalance(userID uint) (decimal.Decimal, error) {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
		}
		return decimal.Zero, err
	}
	sum, err := s.cotRepo.SumValidReceived(userID)
	if err != nil {
		return decimal.Zero, err
	}
	u.Balance = sum
	if err := s.userRepo.Update(u); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
