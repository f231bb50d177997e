package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"canteen-web/internal/auth"
	"canteen-web/internal/i18n"
	"canteen-web/internal/menu"
	"canteen-web/internal/router"
	"canteen-web/internal/session"
	"canteen-web/internal/store"
)

const contextKeyPage = "page"

// Page is the data every template receives
type Page struct {
	Route     router.Route
	Path      string
	Lang      string
	Languages []i18n.Language
	Nav       []router.NavItem
	User      *auth.User
	LoggedIn  bool
	CSRF      string
	CartCount int
	Flash     *store.Flash
	Error     string
	Data      any

	token  string
	store  *store.Store
	bundle *i18n.Bundle
}

var titles = map[router.Route]string{
	router.Login:     "login",
	router.Menu:      "menuTitle",
	router.Cart:      "cartTitle",
	router.Checkout:  "checkoutTitle",
	router.Cook:      "cookTitle",
	router.DailyMenu: "dailyMenuTitle",
	router.Pickup:    "pickupTitle",
	router.MyOrders:  "myOrdersTitle",
	router.Admin:     "adminTitle",
}

// Title returns the translated heading of the page
func (p *Page) Title() string {
	return p.T(titles[p.Route])
}

// T translates key into the page language
func (p *Page) T(key string) string {
	return p.bundle.T(p.Lang, key)
}

// Status translates an order status
func (p *Page) Status(status string) string {
	return p.bundle.Status(p.Lang, status)
}

// DateLabel renders a day for the date selectors
func (p *Page) DateLabel(d time.Time) string {
	return menu.DateLabel(p.bundle, p.Lang, d)
}

// RoleName returns the display name of a role
func (p *Page) RoleName(role auth.Role) string {
	switch role {
	case auth.RoleAdmin:
		return p.T("roleAdmin")
	case auth.RoleCook:
		return p.T("roleCook")
	case auth.RoleStudent:
		return p.T("roleStudent")
	default:
		return p.T("roleUser")
	}
}

// GroupTypeName returns the display name of a group type
func (p *Page) GroupTypeName(t auth.GroupType) string {
	switch t {
	case auth.GroupSchool:
		return p.T("groupSchool")
	case auth.GroupUniversity:
		return p.T("groupUniversity")
	case auth.GroupBusiness:
		return p.T("groupBusiness")
	default:
		return string(t)
	}
}

func pageFrom(c *gin.Context) *Page {
	if v, ok := c.Get(contextKeyPage); ok {
		if p, ok := v.(*Page); ok {
			return p
		}
	}
	return nil
}

// guard applies the login and role rules of route and builds the page frame.
// Browsers that may not see the page are redirected.
func (h *Handler) guard(route router.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := session.FromContext(c)
		if st == nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		ctx := c.Request.Context()
		sess, err := st.Session(ctx)
		if err != nil {
			storeFailure(c, err)
			return
		}

		decision := router.Resolve(sess.LoggedIn(), sess.Role(), route)
		if decision.Action == router.Redirect {
			c.Redirect(http.StatusSeeOther, "/"+string(decision.Route))
			c.Abort()
			return
		}

		p, err := h.newPage(c, st, sess, decision.Route)
		if err != nil {
			storeFailure(c, err)
			return
		}
		c.Set(contextKeyPage, p)
		c.Next()
	}
}

func (h *Handler) newPage(c *gin.Context, st *store.Store, sess auth.Session, route router.Route) (*Page, error) {
	ctx := c.Request.Context()
	p := &Page{
		Route:     route,
		Path:      c.Request.URL.RequestURI(),
		Languages: h.i18n.Languages(),
		Nav:       router.Nav(sess.LoggedIn(), sess.Role(), route),
		User:      sess.User,
		LoggedIn:  sess.LoggedIn(),
		token:     sess.Token,
		store:     st,
		bundle:    h.i18n,
	}

	var err error
	if p.Lang, err = h.lang(ctx, st); err != nil {
		return nil, err
	}
	if p.CSRF, err = session.EnsureCSRF(ctx, st); err != nil {
		return nil, err
	}
	if p.LoggedIn {
		cart, err := st.Cart(ctx)
		if err != nil {
			return nil, err
		}
		p.CartCount = cart.Count()
	}
	// a flash is consumed by the page that shows it, never by an action
	if c.Request.Method == http.MethodGet {
		if p.Flash, err = st.PopFlash(ctx); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (h *Handler) lang(ctx context.Context, st *store.Store) (string, error) {
	lang, err := st.Lang(ctx)
	if err != nil {
		return "", err
	}
	return h.i18n.Normalize(lang), nil
}

// localPath returns next when it points inside this site, otherwise "/"
func localPath(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
