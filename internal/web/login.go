package web

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"canteen-web/internal/api"
	"canteen-web/internal/auth"
	"canteen-web/internal/router"
	"canteen-web/internal/session"
	"canteen-web/internal/store"
)

// Root sends the browser to its default page
// GET /
func (h *Handler) Root(c *gin.Context) {
	st := session.FromContext(c)
	sess, err := st.Session(c.Request.Context())
	if err != nil {
		storeFailure(c, err)
		return
	}
	target := router.Login
	if sess.LoggedIn() {
		target = router.DefaultRoute(sess.Role())
	}
	c.Redirect(http.StatusSeeOther, "/"+string(target))
}

// LoginPage renders the login form
// GET /login
func (h *Handler) LoginPage(c *gin.Context) {
	h.render(c, "login.tmpl", pageFrom(c))
}

// Login exchanges login and PIN for a token and opens the role's default page
// POST /login
func (h *Handler) Login(c *gin.Context) {
	p := pageFrom(c)
	ctx := c.Request.Context()

	login := strings.TrimSpace(c.PostForm("login"))
	pin := strings.TrimSpace(c.PostForm("pin"))
	if login == "" || pin == "" {
		h.redirectFlash(c, p, "/login", store.FlashError, p.T("loginPinRequired"))
		return
	}

	res, err := h.api.Login(ctx, login, pin)
	if err != nil {
		text := h.errorText(p, err)
		if api.StatusOf(err) == http.StatusUnauthorized {
			text = p.T("invalidCredentials")
		}
		log.Printf("[http] Login failed for %q: %v", login, err)
		h.redirectFlash(c, p, "/login", store.FlashError, text)
		return
	}

	// a fresh id so that a cookie planted before login never carries the token
	st, err := session.Renew(c)
	if err != nil {
		storeFailure(c, err)
		return
	}
	p.store = st
	if err := p.store.SetToken(ctx, res.AccessToken); err != nil {
		storeFailure(c, err)
		return
	}
	if err := p.store.SetUser(ctx, res.User); err != nil {
		storeFailure(c, err)
		return
	}

	sess := auth.Session{Token: res.AccessToken, User: res.User}
	text := p.T("loginSuccess")
	if res.User != nil && res.User.DisplayName != "" {
		text += " " + p.T("welcome") + ", " + res.User.DisplayName
	}
	h.redirectFlash(c, p, "/"+string(router.DefaultRoute(sess.Role())), store.FlashSuccess, text)
}

// Logout forgets the token and the user profile
// POST /logout
func (h *Handler) Logout(c *gin.Context) {
	st := session.FromContext(c)
	if err := st.ClearSession(c.Request.Context()); err != nil {
		storeFailure(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// SetLang stores the language preference and returns to the page the form was sent from
// POST /lang
func (h *Handler) SetLang(c *gin.Context) {
	st := session.FromContext(c)
	lang := h.i18n.Normalize(c.PostForm("lang"))
	if err := st.SetLang(c.Request.Context(), lang); err != nil {
		storeFailure(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, localPath(c.PostForm("next")))
}
