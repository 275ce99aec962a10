package handler

import (
	"net/http"

	"izmarket/internal/middleware"
	"izmarket/internal/repository"
	"izmarket/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type DepositHandler struct {
	ledger  *service.LedgerService
	cotRepo *repository.CotisationRepository
}

func NewDepositHandler(ledger *service.LedgerService, cotRepo *repository.CotisationRepository) *DepositHandler {
	return &DepositHandler{ledger: ledger, cotRepo: cotRepo}
}

// Create handles POST /api/deposits: records a pending cotisation for
// the authenticated user. No balance effect until an admin validates.
func (h *DepositHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		AmountSent     decimal.Decimal `json:"amount_sent"`
		AmountReceived decimal.Decimal `json:"amount_received"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amounts"})
		return
	}
	cot, err := h.ledger.CreateDeposit(userID, req.AmountSent, req.AmountReceived)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "deposit recorded, awaiting admin validation",
		"cotisation": cot,
	})
}

// ListMine handles GET /api/deposits: the user's own cotisation
// history.
func (h *DepositHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.cotRepo.ListByUser(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cotisations": list})
}
