package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"cotillion/backend/internal/config"
	"cotillion/backend/internal/session"
)

const sessionContextKey = "session"

// SecurityHeaders sets the hardening headers on every response.
func (h *Handler) SecurityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("Referrer-Policy", "no-referrer")
	c.Header("Cross-Origin-Opener-Policy", "same-origin")
	c.Next()
}

// WithSession resolves the browser's session cookie into a Session,
// creating a fresh one on first contact, and refreshes the idle TTL.
func (h *Handler) WithSession(c *gin.Context) {
	cookie, _ := c.Cookie(config.SessionCookieName)

	sess, err := h.Sessions.Fetch(cookie)
	if err != nil {
		respondError(c, err)
		c.Abort()
		return
	}
	if sess == nil {
		sess, err = h.Sessions.Create()
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		value, err := h.Sessions.CookieValue(sess)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.SetCookie(config.SessionCookieName, value,
			int(h.Sessions.TTL().Seconds()), "/", "", false, true)
	} else if err := h.Sessions.Touch(sess); err != nil {
		respondError(c, err)
		c.Abort()
		return
	}

	c.Set(sessionContextKey, sess)
	c.Next()
}

// RequireAccess gates the API behind the site passcode.
func (h *Handler) RequireAccess(c *gin.Context) {
	if !currentSession(c).AccessGranted {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.Next()
}

// EnsureCSRF lazily creates the session's CSRF token and, on mutating
// methods, requires the X-CSRF-Token header to match it.
func (h *Handler) EnsureCSRF(c *gin.Context) {
	sess := currentSession(c)
	token, err := h.Sessions.EnsureCSRF(sess)
	if err != nil {
		respondError(c, err)
		c.Abort()
		return
	}

	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		c.Next()
		return
	}

	header := c.GetHeader("X-CSRF-Token")
	if subtle.ConstantTimeCompare([]byte(header), []byte(token)) != 1 {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Bad CSRF token"})
		return
	}
	c.Next()
}

// RequireUser rejects requests from sessions with no signed-in user.
func (h *Handler) RequireUser(c *gin.Context) {
	if currentSession(c).UserID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
		return
	}
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionContextKey).(*session.Session)
}
