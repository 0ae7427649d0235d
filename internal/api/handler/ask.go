package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cotillion/backend/internal/models"
)

type createAskRequest struct {
	ToUserID string `json:"toUserId"`
	Message  string `json:"message"`
}

// CreateAsk submits a pending ask from the signed-in user. Direction
// and pairing checks happen in storage, atomically.
func (h *Handler) CreateAsk(c *gin.Context) {
	var req createAskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ToUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ask, err := h.Storage.CreateAsk(currentSession(c).UserID, req.ToUserID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "ask": ask})
}

// ListAsks returns every ask the signed-in user is an endpoint of.
func (h *Handler) ListAsks(c *gin.Context) {
	asks, err := h.Storage.ListAsksForUser(currentSession(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if asks == nil {
		asks = []models.Ask{}
	}
	c.JSON(http.StatusOK, gin.H{"asks": asks})
}

// AcceptAsk commits the pairing for a pending ask. Recipient only.
func (h *Handler) AcceptAsk(c *gin.Context) {
	if err := h.Storage.AcceptAsk(c.Param("id"), currentSession(c).UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeclineAsk turns a pending ask down. Recipient only.
func (h *Handler) DeclineAsk(c *gin.Context) {
	if err := h.Storage.DeclineAsk(c.Param("id"), currentSession(c).UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CancelAsk withdraws a pending ask. Sender only.
func (h *Handler) CancelAsk(c *gin.Context) {
	if err := h.Storage.CancelAsk(c.Param("id"), currentSession(c).UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
