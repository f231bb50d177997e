package web

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"canteen-web/internal/api"
	"canteen-web/internal/menu"
	"canteen-web/internal/store"
)

// recommendations is the size of the "you may like" strip
const recommendations = 5

type dateOption struct {
	Value    string
	Label    string
	Selected bool
}

// dish is a menu item prepared for display
type dish struct {
	ID          string
	Name        string
	Category    string
	Description string
	Image       string
	Price       decimal.Decimal
	Available   bool
	Stock       *int
	Facts       menu.Facts
	HasFacts    bool
}

type menuView struct {
	Dates       []dateOption
	Date        string
	Location    *api.Location
	NoDailyMenu bool
	Groups      []menu.Group[dish]
	Recommended []dish
}

// dates returns the day selector and the chosen day
func (h *Handler) dates(p *Page, requested string) ([]dateOption, time.Time) {
	days := menu.DateOptions(h.now(), menu.DefaultDays)
	selected := menu.SelectDate(requested, days)
	opts := make([]dateOption, 0, len(days))
	for _, d := range days {
		opts = append(opts, dateOption{
			Value:    menu.FormatDate(d),
			Label:    p.DateLabel(d),
			Selected: d.Equal(selected),
		})
	}
	return opts, selected
}

func newDish(item api.MenuItem, lang string) dish {
	d := dish{
		ID:        item.ID,
		Name:      menu.LocalizedName(item, lang),
		Category:  item.Category,
		Image:     menu.Image(item),
		Price:     item.Price,
		Available: item.Available(),
		Stock:     item.StockQty,
	}
	if meta, ok := menu.ItemMeta(item.ID); ok {
		d.Description = meta.Description(lang)
	}
	d.Facts, d.HasFacts = menu.Nutrition(item)
	return d
}

func (h *Handler) menuQuery(day time.Time) api.MenuQuery {
	return api.MenuQuery{
		LocationID: h.locationID,
		Date:       menu.FormatDate(day),
		Day:        menu.WeekdayForMenu(day),
	}
}

// MenuPage renders the menu of the selected day
// GET /menu?date=YYYY-MM-DD
func (h *Handler) MenuPage(c *gin.Context) {
	p := pageFrom(c)
	dates, day := h.dates(p, c.Query("date"))
	view := &menuView{Dates: dates, Date: menu.FormatDate(day)}
	p.Data = view

	res, err := h.api.Menu(c.Request.Context(), p.token, h.menuQuery(day))
	if err != nil {
		h.renderFailure(c, "menu.tmpl", p, err)
		return
	}

	view.Location = res.Location
	view.NoDailyMenu = res.NoDailyMenu()
	dishes := make([]dish, 0, len(res.Items))
	for _, item := range res.Items {
		dishes = append(dishes, newDish(item, p.Lang))
	}
	view.Groups = menu.GroupBy(dishes, func(d dish) string { return d.Category })
	for _, item := range h.recommend(res.Items) {
		view.Recommended = append(view.Recommended, newDish(item, p.Lang))
	}
	h.render(c, "menu.tmpl", p)
}

// AddToCart puts one portion of a dish into the cart. Name and price are taken from the
// menu of the day, not from the form.
// POST /menu/add
func (h *Handler) AddToCart(c *gin.Context) {
	p := pageFrom(c)
	ctx := c.Request.Context()
	_, day := h.dates(p, c.PostForm("date"))
	back := "/menu?" + url.Values{"date": {menu.FormatDate(day)}}.Encode()

	res, err := h.api.Menu(ctx, p.token, h.menuQuery(day))
	if err != nil {
		h.redirectFailure(c, p, back, err)
		return
	}

	id := c.PostForm("id")
	var found *api.MenuItem
	for i := range res.Items {
		if res.Items[i].ID == id {
			found = &res.Items[i]
			break
		}
	}
	if found == nil || !found.Available() {
		h.redirectFlash(c, p, back, store.FlashError, p.T("itemUnavailable"))
		return
	}

	name := menu.LocalizedName(*found, p.Lang)
	if err := p.store.AddToCart(ctx, store.CartItem{ID: found.ID, Name: name, Price: found.Price}); err != nil {
		storeFailure(c, err)
		return
	}
	h.redirectFlash(c, p, back, store.FlashSuccess, p.T("addedToCart")+": "+name)
}

// CartPage renders the cart with subtotals and the total
// GET /cart
func (h *Handler) CartPage(c *gin.Context) {
	p := pageFrom(c)
	cart, err := p.store.Cart(c.Request.Context())
	if err != nil {
		storeFailure(c, err)
		return
	}
	p.Data = cart
	h.render(c, "cart.tmpl", p)
}

// IncCartItem adds one portion to a cart line
// POST /cart/inc
func (h *Handler) IncCartItem(c *gin.Context) {
	h.changeQty(c, 1)
}

// DecCartItem removes one portion; the line goes away at zero
// POST /cart/dec
func (h *Handler) DecCartItem(c *gin.Context) {
	h.changeQty(c, -1)
}

func (h *Handler) changeQty(c *gin.Context, delta int) {
	p := pageFrom(c)
	ctx := c.Request.Context()
	id := c.PostForm("id")

	cart, err := p.store.Cart(ctx)
	if err != nil {
		storeFailure(c, err)
		return
	}
	if item, ok := cart.Find(id); ok {
		if err := p.store.UpdateCartQty(ctx, id, item.Qty+delta); err != nil {
			storeFailure(c, err)
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// RemoveCartItem drops a cart line
// POST /cart/remove
func (h *Handler) RemoveCartItem(c *gin.Context) {
	p := pageFrom(c)
	if err := p.store.RemoveFromCart(c.Request.Context(), c.PostForm("id")); err != nil {
		storeFailure(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// CheckoutPage renders the order summary
// GET /checkout
func (h *Handler) CheckoutPage(c *gin.Context) {
	p := pageFrom(c)
	cart, err := p.store.Cart(c.Request.Context())
	if err != nil {
		storeFailure(c, err)
		return
	}
	p.Data = cart
	h.render(c, "checkout.tmpl", p)
}

// PlaceOrder creates the order, pays it and empties the cart. When the order cannot be
// created nothing is paid and the cart is kept.
// POST /checkout
func (h *Handler) PlaceOrder(c *gin.Context) {
	p := pageFrom(c)
	ctx := c.Request.Context()

	cart, err := p.store.Cart(ctx)
	if err != nil {
		storeFailure(c, err)
		return
	}
	if len(cart) == 0 {
		h.redirectFlash(c, p, "/checkout", store.FlashError, p.T("emptyCart"))
		return
	}

	req := api.CreateOrderRequest{
		LocationID: h.locationID,
		Items:      make([]api.OrderItemRequest, 0, len(cart)),
	}
	for _, item := range cart {
		req.Items = append(req.Items, api.OrderItemRequest{MenuItemID: item.ID, Qty: item.Qty})
	}

	order, err := h.api.CreateOrder(ctx, p.token, req)
	if err != nil {
		h.redirectFailure(c, p, "/checkout", err)
		return
	}
	if err := p.store.SetLastOrderID(ctx, order.OrderID); err != nil {
		storeFailure(c, err)
		return
	}

	if _, err := h.api.FakePayment(ctx, p.token, order.OrderID); err != nil {
		h.redirectFailure(c, p, "/checkout", err)
		return
	}
	if err := p.store.ClearCart(ctx); err != nil {
		storeFailure(c, err)
		return
	}

	log.Printf("[http] Order %s placed and paid", order.OrderID)
	h.redirectFlash(c, p, "/checkout", store.FlashSuccess, "✓ "+p.T("orderPlaced"),
		p.T("orderId")+": "+order.OrderID,
		p.T("status")+": "+p.Status(api.StatusPaid),
		p.T("total")+": "+p.Money(order.Total),
	)
}
