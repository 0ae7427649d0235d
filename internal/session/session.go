package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is the per-browser state: whether the site passcode was
// entered, which user (if any) is signed in, and the anti-forgery token.
type Session struct {
	ID            string `json:"id"`
	AccessGranted bool   `json:"accessGranted"`
	UserID        string `json:"userId,omitempty"`
	CSRF          string `json:"csrf,omitempty"`
}

// Store persists sessions keyed by session id. Load returns (nil, nil)
// for an unknown or expired id.
type Store interface {
	LoadSession(id string) (*Session, error)
	SaveSession(s *Session, ttl time.Duration) error
	DeleteSession(id string) error
}

// Manager owns the session lifecycle: creation, cookie signing, the idle
// TTL, and the CSRF token rules (lazy creation, rotation on passcode
// entry).
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager over the given store. secret signs the
// session cookie; ttl is the idle expiry window.
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the idle expiry window sessions are stored with.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create makes and persists a fresh anonymous session.
func (m *Manager) Create() (*Session, error) {
	s := &Session{ID: uuid.New().String()}
	if err := m.store.SaveSession(s, m.ttl); err != nil {
		return nil, err
	}
	return s, nil
}

// CookieValue signs the session id into the value carried by the
// browser cookie.
func (m *Manager) CookieValue(s *Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": s.ID,
		"exp": time.Now().Add(m.ttl).Unix(),
		"iss": "cotillion-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Fetch resolves a cookie value back to the stored session. A missing,
// malformed, expired or unknown cookie yields (nil, nil) so the caller
// can start a fresh session.
func (m *Manager) Fetch(cookieValue string) (*Session, error) {
	if cookieValue == "" {
		return nil, nil
	}
	token, err := jwt.Parse(cookieValue, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return nil, nil
	}
	return m.store.LoadSession(sid)
}

// Touch refreshes the idle TTL.
func (m *Manager) Touch(s *Session) error {
	return m.store.SaveSession(s, m.ttl)
}

// GrantAccess marks the session as site-authorized and rotates the CSRF
// token.
func (m *Manager) GrantAccess(s *Session) error {
	s.AccessGranted = true
	s.CSRF = uuid.New().String()
	return m.store.SaveSession(s, m.ttl)
}

// EnsureCSRF returns the session's CSRF token, generating and persisting
// one on first need.
func (m *Manager) EnsureCSRF(s *Session) (string, error) {
	if s.CSRF != "" {
		return s.CSRF, nil
	}
	s.CSRF = uuid.New().String()
	if err := m.store.SaveSession(s, m.ttl); err != nil {
		return "", err
	}
	return s.CSRF, nil
}

// BindUser attaches a signed-in user to the session.
func (m *Manager) BindUser(s *Session, userID string) error {
	s.UserID = userID
	return m.store.SaveSession(s, m.ttl)
}

// ClearUser removes the user binding. The CSRF token is left alone.
func (m *Manager) ClearUser(s *Session) error {
	s.UserID = ""
	return m.store.SaveSession(s, m.ttl)
}
