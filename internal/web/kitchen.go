package web

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"canteen-web/internal/api"
	"canteen-web/internal/menu"
	"canteen-web/internal/store"
)

// CookPage renders the kitchen queue
// GET /cook
func (h *Handler) CookPage(c *gin.Context) {
	p := pageFrom(c)
	res, err := h.api.CookQueue(c.Request.Context(), p.token, h.locationID)
	if err != nil {
		h.renderFailure(c, "cook.tmpl", p, err)
		return
	}
	p.Data = res.Orders
	h.render(c, "cook.tmpl", p)
}

// MarkReady moves an order to READY and shows its pickup code
// POST /cook/orders/:id/ready
func (h *Handler) MarkReady(c *gin.Context) {
	p := pageFrom(c)
	res, err := h.api.MarkReady(c.Request.Context(), p.token, c.Param("id"))
	if err != nil {
		h.redirectFailure(c, p, "/cook", err)
		return
	}
	lines := []string{p.T("orderId") + ": " + res.OrderID, p.T("pickupCode") + ": " + res.PickupCode}
	if res.CellCode != "" {
		lines = append(lines, p.T("cell")+": "+res.CellCode)
	}
	h.redirectFlash(c, p, "/cook", store.FlashSuccess, "✓ "+p.T("ready"), lines...)
}

// dailyRow is one catalog dish in the daily menu editor
type dailyRow struct {
	ID       string
	Name     string
	Category string
	Price    string
	Checked  bool
	Stock    string
}

type dailyMenuView struct {
	Dates []dateOption
	Date  string
	Rows  []dailyRow
}

// DailyMenuPage renders the catalog with the dishes of the selected day checked
// GET /daily-menu?date=YYYY-MM-DD
func (h *Handler) DailyMenuPage(c *gin.Context) {
	p := pageFrom(c)
	ctx := c.Request.Context()
	dates, day := h.dates(p, c.Query("date"))
	view := &dailyMenuView{Dates: dates, Date: menu.FormatDate(day)}
	p.Data = view

	var (
		g       errgroup.Group
		catalog *api.CatalogResponse
		daily   *api.DailyMenuResponse
	)
	g.Go(func() error {
		var err error
		catalog, err = h.api.Catalog(ctx, p.token, h.locationID)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = h.api.DailyMenu(ctx, p.token, h.locationID, view.Date, api.DefaultMealSlot)
		return err
	})
	if err := g.Wait(); err != nil {
		h.renderFailure(c, "daily_menu.tmpl", p, err)
		return
	}

	selected := make(map[string]api.DailyMenuItem, len(daily.Items))
	for _, item := range daily.Items {
		selected[item.MenuItemID] = item
	}
	groups := menu.GroupBy(catalog.Items, func(item api.CatalogItem) string { return item.Category })
	for _, group := range groups {
		for _, item := range group.Items {
			row := dailyRow{
				ID:       item.ID,
				Name:     menu.CatalogName(item, p.Lang),
				Category: item.Category,
				Price:    p.Money(item.BasePrice),
			}
			if di, ok := selected[item.ID]; ok {
				row.Checked = true
				if di.StockQty != nil {
					row.Stock = strconv.Itoa(*di.StockQty)
				}
			}
			view.Rows = append(view.Rows, row)
		}
	}
	h.render(c, "daily_menu.tmpl", p)
}

// parseStock reads a stock field. Anything that is not a number means unlimited,
// negative numbers mean sold out.
func parseStock(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	if n < 0 {
		n = 0
	}
	return &n
}

// SaveDailyMenu replaces the menu of the selected day with the checked dishes
// POST /daily-menu
func (h *Handler) SaveDailyMenu(c *gin.Context) {
	p := pageFrom(c)
	_, day := h.dates(p, c.PostForm("date"))
	date := menu.FormatDate(day)
	back := "/daily-menu?" + url.Values{"date": {date}}.Encode()

	req := api.SaveDailyMenuRequest{
		LocationID: h.locationID,
		MenuDate:   date,
		MealSlot:   api.DefaultMealSlot,
		Items:      []api.DailyMenuEntry{},
	}
	for _, id := range c.PostFormArray("item") {
		req.Items = append(req.Items, api.DailyMenuEntry{
			MenuItemID:  id,
			StockQty:    parseStock(c.PostForm("stock_" + id)),
			IsAvailable: true,
		})
	}

	if _, err := h.api.SaveDailyMenu(c.Request.Context(), p.token, req); err != nil {
		h.redirectFailure(c, p, back, err)
		return
	}
	h.redirectFlash(c, p, back, store.FlashSuccess, "✓ "+p.T("dailyMenuSaved"))
}

type pickupView struct {
	OrderID string
}

// PickupPage renders the claim form, prefilled with the last order placed in this browser
// GET /pickup
func (h *Handler) PickupPage(c *gin.Context) {
	p := pageFrom(c)
	orderID, err := p.store.LastOrderID(c.Request.Context())
	if err != nil {
		storeFailure(c, err)
		return
	}
	p.Data = pickupView{OrderID: orderID}
	h.render(c, "pickup.tmpl", p)
}

// ClaimPickup hands out an order against its pickup code
// POST /pickup
func (h *Handler) ClaimPickup(c *gin.Context) {
	p := pageFrom(c)
	ctx := c.Request.Context()
	orderID := strings.TrimSpace(c.PostForm("order_id"))
	code := strings.TrimSpace(c.PostForm("pickup_code"))
	if orderID == "" || code == "" {
		h.redirectFlash(c, p, "/pickup", store.FlashError, p.T("pickupFieldsRequired"))
		return
	}

	res, err := h.api.ClaimPickup(ctx, p.token, orderID, code)
	if err != nil {
		h.redirectFailure(c, p, "/pickup", err)
		return
	}
	if err := p.store.ClearLastOrderID(ctx); err != nil {
		storeFailure(c, err)
		return
	}

	lines := []string{p.T("orderId") + ": " + res.OrderID}
	if res.CellCode != "" {
		lines = append(lines, p.T("cell")+": "+res.CellCode)
	}
	h.redirectFlash(c, p, "/pickup", store.FlashSuccess, "✓ "+res.Message, lines...)
}

// MyOrdersPage lists the orders of the user
// GET /my-orders
func (h *Handler) MyOrdersPage(c *gin.Context) {
	p := pageFrom(c)
	res, err := h.api.MyOrders(c.Request.Context(), p.token)
	if err != nil {
		h.renderFailure(c, "my_orders.tmpl", p, err)
		return
	}
	p.Data = res.Orders
	h.render(c, "my_orders.tmpl", p)
}
