package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"cotillion/backend/internal/config"
	"cotillion/backend/internal/models"
)

const accessPageHTML = `<!doctype html>
<html><body><form method="POST" action="/enter">
<h1>Enter Site Passcode</h1>
<input name="password" type="password" />
<button type="submit">Enter</button>
</form></body></html>`

// Index serves the app page, or bounces ungated visitors to the
// passcode form.
func (h *Handler) Index(c *gin.Context) {
	if !currentSession(c).AccessGranted {
		c.Redirect(http.StatusFound, "/access")
		return
	}
	c.File("./public/index.html")
}

// AccessPage renders the site passcode form.
func (h *Handler) AccessPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(accessPageHTML))
}

// Enter checks the submitted passcode against the configured site
// secret. On match the session becomes site-authorized and the CSRF
// token is rotated.
func (h *Handler) Enter(c *gin.Context) {
	password := c.PostForm("password")
	if subtle.ConstantTimeCompare([]byte(password), []byte(h.Cfg.AccessPassword)) != 1 {
		c.String(http.StatusUnauthorized, "Wrong passcode.")
		return
	}
	if err := h.Sessions.GrantAccess(currentSession(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// CSRFToken returns the session's CSRF token (created lazily by the
// EnsureCSRF middleware).
func (h *Handler) CSRFToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"csrf": currentSession(c).CSRF})
}

type signUpRequest struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Gender string `json:"gender"`
}

// SignUp registers a new participant and binds the session to them.
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	name := models.SanitizeName(req.Name)
	code := strings.TrimSpace(req.Code)
	if name == "" || len(code) < config.CodeMinLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid name or code"})
		return
	}
	gender := models.NormalizeGender(req.Gender)
	if gender == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pick girl or guy"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), config.BcryptCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{Name: name, CodeHash: string(hash), Gender: gender}
	if err := h.Storage.CreateUser(user); err != nil {
		respondError(c, err)
		return
	}
	if err := h.Sessions.BindUser(currentSession(c), user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": models.Member{
		ID:     user.ID,
		Name:   user.Name,
		Gender: user.Gender,
	}})
}

type signInRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// SignIn authenticates by name and access code and binds the session.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.Storage.GetUserByName(models.SanitizeName(req.Name))
	if err != nil {
		respondError(c, err)
		return
	}
	code := strings.TrimSpace(req.Code)
	if bcrypt.CompareHashAndPassword([]byte(user.CodeHash), []byte(code)) != nil {
		respondError(c, models.ErrWrongCode)
		return
	}

	if err := h.Sessions.BindUser(currentSession(c), user.ID); err != nil {
		respondError(c, err)
		return
	}

	member, err := h.Storage.GetMemberByID(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": member})
}

// SignOut clears the session's user binding. The CSRF token survives.
func (h *Handler) SignOut(c *gin.Context) {
	if err := h.Sessions.ClearUser(currentSession(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me returns the signed-in user's directory view.
func (h *Handler) Me(c *gin.Context) {
	member, err := h.Storage.GetMemberByID(currentSession(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"me": member})
}
