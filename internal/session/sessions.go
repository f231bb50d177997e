// Package session binds a browser to its server-side store through a cookie.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"canteen-web/internal/store"
)

const (
	// CookieName is the name of the session cookie
	CookieName = "canteen_session"

	// DefaultDuration is the default session lifetime
	DefaultDuration = store.DefaultTTL
)

// Manager opens and destroys browser sessions
type Manager struct {
	backend      store.Backend
	duration     time.Duration
	secureCookie bool
}

// NewManager creates a new session manager
func NewManager(backend store.Backend, duration time.Duration, secureCookie bool) *Manager {
	if duration == 0 {
		duration = DefaultDuration
	}
	return &Manager{
		backend:      backend,
		duration:     duration,
		secureCookie: secureCookie,
	}
}

// Open returns the store of the requesting browser. A browser without a valid
// cookie gets a fresh session id. Every call slides the expiry forward.
func (m *Manager) Open(c *gin.Context) (*store.Store, error) {
	sid, err := c.Cookie(CookieName)
	if err != nil || !validID(sid) {
		sid = uuid.New().String()
	}
	if err := m.backend.Touch(c.Request.Context(), sid, m.duration); err != nil {
		return nil, err
	}
	m.SetCookie(c, sid)
	return store.New(m.backend, sid), nil
}

// carried lists the keys that survive a change of session id
var carried = []string{store.KeyCart, store.KeyLang, store.KeyOrderID}

// Renew moves the browser to a fresh session id. Cart, language and last order id are
// copied over, the old id is dropped and a new CSRF token is issued.
func (m *Manager) Renew(c *gin.Context, old *store.Store) (*store.Store, error) {
	ctx := c.Request.Context()
	sid := uuid.New().String()
	if err := m.backend.Touch(ctx, sid, m.duration); err != nil {
		return nil, err
	}
	for _, key := range carried {
		value, ok, err := m.backend.Get(ctx, old.ID(), key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if err := m.backend.Set(ctx, sid, key, value); err != nil {
			return nil, err
		}
	}
	if err := m.backend.Drop(ctx, old.ID()); err != nil {
		return nil, err
	}

	st := store.New(m.backend, sid)
	if _, err := EnsureCSRF(ctx, st); err != nil {
		return nil, err
	}
	m.SetCookie(c, sid)
	c.Set(ContextKeyStore, st)
	return st, nil
}

// Cleanup removes expired sessions from the backend
func (m *Manager) Cleanup(ctx context.Context) (int64, error) {
	return m.backend.CleanupExpired(ctx)
}

// SetCookie sets the session cookie on the response
func (m *Manager) SetCookie(c *gin.Context, sid string) {
	maxAge := int(m.duration.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		CookieName,
		sid,
		maxAge,
		"/",
		"",
		m.secureCookie,
		true, // httpOnly
	)
}

func validID(sid string) bool {
	_, err := uuid.Parse(sid)
	return err == nil
}

/*
This project is the web client of the Smart Canteen ordering service. It renders the menu, cart, kitchen and admin pages on top of the canteen backend API.
Smart Canteen Web Copyright (C) 2025 Smart Canteen contributors
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
