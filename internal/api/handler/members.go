package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Members lists every participant with derived pairing status. Queried
// fresh per request: pairing state changes between calls.
func (h *Handler) Members(c *gin.Context) {
	members, err := h.Storage.ListMembers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}
