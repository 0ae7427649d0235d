package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cotillion/backend/internal/config"
	"cotillion/backend/internal/models"
	"cotillion/backend/internal/session"
	"cotillion/backend/internal/storage"
)

// Handler holds the dependencies of every route handler.
type Handler struct {
	Storage  storage.Storage
	Sessions *session.Manager
	Cfg      *config.Config
}

func NewHandler(s storage.Storage, sessions *session.Manager, cfg *config.Config) *Handler {
	return &Handler{Storage: s, Sessions: sessions, Cfg: cfg}
}

// Register wires every route onto the engine: the passcode gate, the
// static frontend, and the CSRF-protected /api group.
func (h *Handler) Register(r *gin.Engine) {
	r.Use(h.SecurityHeaders, h.WithSession)

	r.Static("/public", "./public")
	r.GET("/", h.Index)
	r.GET("/access", h.AccessPage)
	r.POST("/enter", h.Enter)

	api := r.Group("/api", h.RequireAccess, h.EnsureCSRF)
	api.GET("/csrf", h.CSRFToken)
	api.POST("/signup", h.SignUp)
	api.POST("/signin", h.SignIn)
	api.POST("/signout", h.SignOut)
	api.GET("/me", h.RequireUser, h.Me)
	api.GET("/members", h.Members)
	api.POST("/ask", h.RequireUser, h.CreateAsk)
	api.GET("/asks", h.RequireUser, h.ListAsks)
	api.POST("/ask/:id/accept", h.RequireUser, h.AcceptAsk)
	api.POST("/ask/:id/decline", h.RequireUser, h.DeclineAsk)
	api.POST("/ask/:id/cancel", h.RequireUser, h.CancelAsk)
}

// respondError maps domain errors onto HTTP statuses. Anything
// unexpected is logged and surfaced as a generic server error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Name already taken"})
	case errors.Is(err, models.ErrNoSuchUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No such user"})
	case errors.Is(err, models.ErrWrongCode):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong code"})
	case errors.Is(err, models.ErrWrongDirection):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only girls can ask out guys"})
	case errors.Is(err, models.ErrAlreadyPaired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already taken"})
	case errors.Is(err, models.ErrAskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ask not found"})
	case errors.Is(err, models.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": "Ask already resolved"})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}
