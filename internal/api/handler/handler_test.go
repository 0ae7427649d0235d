package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cotillion/backend/internal/api/handler"
	"cotillion/backend/internal/config"
	"cotillion/backend/internal/session"
)

const testAccessPassword = "letmein"

// memStore is a map-backed session.Store standing in for Redis.
type memStore struct {
	sessions map[string]session.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]session.Session)}
}

func (f *memStore) LoadSession(id string) (*session.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := s
	return &copied, nil
}

func (f *memStore) SaveSession(s *session.Session, ttl time.Duration) error {
	f.sessions[s.ID] = *s
	return nil
}

func (f *memStore) DeleteSession(id string) error {
	delete(f.sessions, id)
	return nil
}

// newTestRouter builds the full route tree over a MockStorage and an
// in-memory session store.
func newTestRouter(storageMock *MockStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := &config.Config{
		AccessPassword: testAccessPassword,
		SessionSecret:  "test-secret",
	}
	sessions := session.NewManager(newMemStore(), cfg.SessionSecret, config.SessionTTL)
	h := handler.NewHandler(storageMock, sessions, cfg)
	h.Register(r)
	return r
}

// client drives the router like a browser: it keeps the session cookie
// and, once fetched, the CSRF token.
type client struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
	csrf   string
}

func newClient(t *testing.T, router *gin.Engine) *client {
	return &client{t: t, router: router}
}

func (c *client) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		assert.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == config.SessionCookieName {
			c.cookie = cookie
		}
	}
	return w
}

// get performs a GET with the session cookie.
func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil, nil)
}

// post performs a JSON POST carrying the CSRF header.
func (c *client) post(path string, body any) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, body, map[string]string{"X-CSRF-Token": c.csrf})
}

// enter submits the site passcode form.
func (c *client) enter(password string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/enter",
		strings.NewReader("password="+password))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == config.SessionCookieName {
			c.cookie = cookie
		}
	}
	return w
}

// authorize enters the passcode and fetches the CSRF token.
func (c *client) authorize() {
	w := c.enter(testAccessPassword)
	assert.Equal(c.t, http.StatusFound, w.Code, "Correct passcode must be accepted")

	w = c.get("/api/csrf")
	assert.Equal(c.t, http.StatusOK, w.Code)

	var payload struct {
		CSRF string `json:"csrf"`
	}
	assert.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.NotEmpty(c.t, payload.CSRF)
	c.csrf = payload.CSRF
}

// signUpAs registers a user through the API with CreateUser mocked to
// assign the given id.
func (c *client) signUpAs(storageMock *MockStorage, id, name, gender string) {
	storageMock.On("CreateUser", mockUserNamed(name)).Run(setUserID(id)).Return(nil).Once()

	w := c.post("/api/signup", gin.H{"name": name, "code": "1234", "gender": gender})
	assert.Equal(c.t, http.StatusOK, w.Code, "signup should succeed: %s", w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	var payload struct {
		Error string `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.Error
}
