package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"canteen-web/internal/common"
	"canteen-web/internal/router"
	"canteen-web/internal/session"
)

//go:embed static
var staticFS embed.FS

// RegisterRoutes registers every page of the web client
func RegisterRoutes(engine *gin.Engine, h *Handler, sessions *session.Manager) {
	engine.SetHTMLTemplate(h.Templates())

	assets, _ := fs.Sub(staticFS, "static")
	engine.StaticFS("/static", http.FS(assets))
	engine.StaticFileFS("/favicon.ico", "favicon.svg", http.FS(assets))

	pages := engine.Group("/")
	pages.Use(sessions.Load(), session.RequireCSRF())
	{
		pages.GET("/", h.Root)
		pages.POST("/lang", h.SetLang)
		pages.POST("/logout", h.Logout)

		login := pages.Group("/login", h.guard(router.Login))
		login.GET("", h.LoginPage)
		login.POST("", h.Login)

		menu := pages.Group("/menu", h.guard(router.Menu))
		menu.GET("", h.MenuPage)
		menu.POST("/add", h.AddToCart)

		cart := pages.Group("/cart", h.guard(router.Cart))
		cart.GET("", h.CartPage)
		cart.POST("/inc", h.IncCartItem)
		cart.POST("/dec", h.DecCartItem)
		cart.POST("/remove", h.RemoveCartItem)

		checkout := pages.Group("/checkout", h.guard(router.Checkout))
		checkout.GET("", h.CheckoutPage)
		checkout.POST("", h.PlaceOrder)

		cook := pages.Group("/cook", h.guard(router.Cook))
		cook.GET("", h.CookPage)
		cook.POST("/orders/:id/ready", h.MarkReady)

		dailyMenu := pages.Group("/daily-menu", h.guard(router.DailyMenu))
		dailyMenu.GET("", h.DailyMenuPage)
		dailyMenu.POST("", h.SaveDailyMenu)

		pickup := pages.Group("/pickup", h.guard(router.Pickup))
		pickup.GET("", h.PickupPage)
		pickup.POST("", h.ClaimPickup)

		myOrders := pages.Group("/my-orders", h.guard(router.MyOrders))
		myOrders.GET("", h.MyOrdersPage)

		admin := pages.Group("/admin", h.guard(router.Admin))
		admin.GET("", h.AdminPage)
		admin.POST("/menu", h.AdminSaveMenu)
		admin.POST("/users", h.AdminCreateUser)
		admin.POST("/users/:id", h.AdminUpdateUser)
		admin.POST("/users/:id/delete", h.AdminDeleteUser)
		admin.POST("/users/:id/group", h.AdminAssignGroup)
		admin.POST("/groups", h.AdminCreateGroup)
	}

	engine.NoRoute(h.NotFound(sessions))
}

// NotFound sends unknown page paths through the route guard: anonymous browsers land on
// login, logged-in ones on their default page. Unknown /api paths get a JSON 404.
func (h *Handler) NotFound(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, common.CreateErrorResponseWithRequestID(
				[]string{"not found"}, common.RequestIDFrom(c)))
			return
		}

		st, err := sessions.Open(c)
		if err != nil {
			storeFailure(c, err)
			return
		}
		sess, err := st.Session(c.Request.Context())
		if err != nil {
			storeFailure(c, err)
			return
		}

		segment, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
		route := router.Route(segment)
		if !router.Known(route) {
			route = router.DefaultRoute(sess.Role())
		}
		decision := router.Resolve(sess.LoggedIn(), sess.Role(), route)
		c.Redirect(http.StatusSeeOther, "/"+string(decision.Route))
	}
}
