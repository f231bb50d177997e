// Package web renders the canteen pages on top of the backend API.
package web

import (
	"errors"
	"html/template"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"canteen-web/internal/api"
	"canteen-web/internal/env"
	"canteen-web/internal/i18n"
	"canteen-web/internal/menu"
	"canteen-web/internal/store"
)

// Config holds the settings of the page handlers
type Config struct {
	LocationID string

	// Now and Rand are replaced in tests
	Now  func() time.Time
	Rand *rand.Rand
}

// Handler serves every page of the web client
type Handler struct {
	api        *api.Client
	i18n       *i18n.Bundle
	templates  *template.Template
	locationID string
	now        func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewHandler creates a new page handler
func NewHandler(client *api.Client, bundle *i18n.Bundle, cfg Config) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if cfg.LocationID == "" {
		cfg.LocationID = env.DefaultLocationID
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Handler{
		api:        client,
		i18n:       bundle,
		templates:  tmpl,
		locationID: cfg.LocationID,
		now:        cfg.Now,
		rng:        cfg.Rand,
	}, nil
}

// Templates returns the parsed page templates, for gin's HTML renderer
func (h *Handler) Templates() *template.Template {
	return h.templates
}

func (h *Handler) recommend(items []api.MenuItem) []api.MenuItem {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	return menu.Recommend(items, recommendations, h.rng)
}

func (h *Handler) render(c *gin.Context, name string, p *Page) {
	c.HTML(http.StatusOK, name, p)
}

// errorText turns a failed backend call into the message shown to the user
func (h *Handler) errorText(p *Page, err error) string {
	if errors.Is(err, api.ErrNetwork) {
		return p.T("serverUnavailable")
	}
	return p.T("error") + ": " + errorDetail(p, err)
}

func errorDetail(p *Page, err error) string {
	if apiErr, ok := api.AsError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return p.T("unknownError")
}

// expired logs the browser out when the backend rejected its token.
// It reports whether the response was written.
func (h *Handler) expired(c *gin.Context, p *Page, err error) bool {
	if !api.IsAuthExpired(err) {
		return false
	}
	ctx := c.Request.Context()
	if err := p.store.ClearSession(ctx); err != nil {
		log.Printf("[http] Failed to clear expired session %s: %v", p.store.ID(), err)
	}
	h.flash(c, p, store.FlashError, p.T("sessionExpired"))
	c.Redirect(http.StatusSeeOther, "/login")
	return true
}

// renderFailure renders a page whose data could not be loaded
func (h *Handler) renderFailure(c *gin.Context, name string, p *Page, err error) {
	if h.expired(c, p, err) {
		return
	}
	log.Printf("[http] %s: %v", p.Route, err)
	p.Error = h.errorText(p, err)
	h.render(c, name, p)
}

// redirectFailure reports a failed action on the page at to
func (h *Handler) redirectFailure(c *gin.Context, p *Page, to string, err error) {
	if h.expired(c, p, err) {
		return
	}
	log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	h.redirectFlash(c, p, to, store.FlashError, h.errorText(p, err))
}

func (h *Handler) redirectFlash(c *gin.Context, p *Page, to, kind, text string, lines ...string) {
	h.flash(c, p, kind, text, lines...)
	c.Redirect(http.StatusSeeOther, to)
}

func (h *Handler) flash(c *gin.Context, p *Page, kind, text string, lines ...string) {
	if err := p.store.SetFlash(c.Request.Context(), kind, text, lines...); err != nil {
		log.Printf("[http] Failed to store flash message: %v", err)
	}
}

// storeFailure answers a request whose session could not be read or written
func storeFailure(c *gin.Context, err error) {
	log.Printf("[session] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatus(http.StatusServiceUnavailable)
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
