package handler

import (
	"net/http"
	"strconv"

	"izmarket/internal/middleware"
	"izmarket/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	moderation *service.ModerationService
}

func NewAdminHandler(moderation *service.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// Data handles GET /api/admin/data: the console's aggregate view.
func (h *AdminHandler) Data(c *gin.Context) {
	data, err := h.moderation.GetAdminData(middleware.GetUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// UserAction handles POST /api/admin/users/:id/:action
// (activate | deactivate | delete | update | recompute-balance).
func (h *AdminHandler) UserAction(c *gin.Context) {
	switch c.Param("action") {
	case "recompute-balance":
		h.RecomputeBalance(c)
		return
	case "update":
		h.UpdateUser(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	action := c.Param("action")
	if err := h.moderation.UserAction(middleware.GetUserID(c), id, action); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user " + action + " applied"})
}

// UpdateUser applies partial-update semantics over the user's contact
// fields. Dispatched from UserAction for the "update" action.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.moderation.UpdateUser(middleware.GetUserID(c), id, fields); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

// ArticleAction handles POST /api/admin/articles/:id/:action
// (approve | reject | delete | update).
func (h *AdminHandler) ArticleAction(c *gin.Context) {
	if c.Param("action") == "update" {
		h.UpdateArticle(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	action := c.Param("action")
	if err := h.moderation.ArticleAction(middleware.GetUserID(c), id, action); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "article " + action + " applied"})
}

// UpdateArticle applies partial-update semantics: only supplied fields
// change. Dispatched from ArticleAction for the "update" action.
func (h *AdminHandler) UpdateArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.moderation.UpdateArticle(middleware.GetUserID(c), id, fields); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "article updated"})
}

// CotisationAction handles POST /api/admin/cotisations/:id/:action
// (validate | reject | delete). Validate responds with the owner's new
// balance.
func (h *AdminHandler) CotisationAction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	action := c.Param("action")
	balance, err := h.moderation.CotisationAction(middleware.GetUserID(c), id, action)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp := gin.H{"message": "cotisation " + action + " applied"}
	if action == "validate" {
		resp["new_balance"] = balance
	}
	c.JSON(http.StatusOK, resp)
}

// RecomputeBalance runs the ledger's repair path. Dispatched from
// UserAction for the "recompute-balance" action, admin surface only.
func (h *AdminHandler) RecomputeBalance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	balance, err := h.moderation.RecomputeBalance(middleware.GetUserID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": id, "balance": balance})
}
