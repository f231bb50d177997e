package session

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"canteen-web/internal/store"
)

const (
	// ContextKeyStore is the gin context key of the request's session store
	ContextKeyStore = "session_store"

	contextKeyManager = "session_manager"
)

// Load returns a middleware that opens the browser session for every request
func (m *Manager) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := m.Open(c)
		if err != nil {
			log.Printf("[session] Failed to open session: %v", err)
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Set(ContextKeyStore, st)
		c.Set(contextKeyManager, m)
		c.Next()
	}
}

// Renew gives the browser of the request a fresh session id, see Manager.Renew
func Renew(c *gin.Context) (*store.Store, error) {
	v, _ := c.Get(contextKeyManager)
	m, ok := v.(*Manager)
	if !ok {
		return nil, errors.New("session manager not loaded")
	}
	old := FromContext(c)
	if old == nil {
		return nil, errors.New("session not loaded")
	}
	return m.Renew(c, old)
}

// RequireCSRF rejects unsafe requests whose form token does not match the session
func RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		st := FromContext(c)
		if st == nil || !VerifyCSRF(c.Request.Context(), st, c.PostForm(CSRFField)) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// FromContext returns the store opened by Load
func FromContext(c *gin.Context) *store.Store {
	v, exists := c.Get(ContextKeyStore)
	if !exists {
		return nil
	}
	st, ok := v.(*store.Store)
	if !ok {
		return nil
	}
	return st
}
