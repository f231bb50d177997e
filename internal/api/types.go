package api

import (
	"github.com/shopspring/decimal"

	"canteen-web/internal/auth"
)

// Order statuses used by the backend
const (
	StatusCreated   = "CREATED"
	StatusPaid      = "PAID"
	StatusInKitchen = "IN_KITCHEN"
	StatusReady     = "READY"
	StatusPickedUp  = "PICKED_UP"
	StatusExpired   = "EXPIRED"
	StatusCancelled = "CANCELLED"
)

// DefaultMealSlot is the slot used when none is given
const DefaultMealSlot = "lunch"

type LoginRequest struct {
	Login string `json:"login"`
	PIN   string `json:"pin"`
}

type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	User        *auth.User `json:"user"`
}

type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// MenuItem is a dish offered on a given day
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	NameKZ      string          `json:"name_kz"`
	NameRU      string          `json:"name_ru"`
	NameEN      string          `json:"name_en"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable *bool           `json:"is_available"`
	StockQty    *int            `json:"stock_qty"`
	ImageURL    string          `json:"image_url"`
	Nutrition   *Nutrition      `json:"nutrition"`
}

// Available reports whether the item can be ordered. Only an explicit false disables it.
func (m MenuItem) Available() bool {
	return m.IsAvailable == nil || *m.IsAvailable
}

type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsClosed bool   `json:"is_closed"`
}

type MenuMeta struct {
	Today   int `json:"today"`
	Showing int `json:"showing"`
}

type MenuResponse struct {
	Location     *Location  `json:"location"`
	MealSlot     string     `json:"meal_slot"`
	Meta         *MenuMeta  `json:"meta"`
	HasDailyMenu *bool      `json:"has_daily_menu"`
	Items        []MenuItem `json:"items"`
}

// NoDailyMenu reports whether the backend said that no menu was composed for the day
func (r MenuResponse) NoDailyMenu() bool {
	return r.HasDailyMenu != nil && !*r.HasDailyMenu
}

// MenuQuery selects the menu of one day
type MenuQuery struct {
	LocationID string
	Date       string // YYYY-MM-DD
	Day        int    // 1..5, Monday..Friday
}

// CatalogItem is a dish of the full catalog
type CatalogItem struct {
	ID        string          `json:"id"`
	NameRU    string          `json:"name_ru"`
	NameKZ    string          `json:"name_kz"`
	NameEN    string          `json:"name_en"`
	Category  string          `json:"category"`
	BasePrice decimal.Decimal `json:"base_price"`
}

type CatalogResponse struct {
	Items []CatalogItem `json:"items"`
}

// DailyMenuItem is a catalog dish put on the menu of a day
type DailyMenuItem struct {
	MenuItemID  string          `json:"menu_item_id"`
	NameRU      string          `json:"name_ru"`
	NameKZ      string          `json:"name_kz"`
	Category    string          `json:"category"`
	BasePrice   decimal.Decimal `json:"base_price"`
	StockQty    *int            `json:"stock_qty"`
	IsAvailable bool            `json:"is_available"`
}

type DailyMenuInfo struct {
	ID        string `json:"id"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

type DailyMenuResponse struct {
	DailyMenu  *DailyMenuInfo  `json:"daily_menu"`
	LocationID string          `json:"location_id"`
	Date       string          `json:"date"`
	MealSlot   string          `json:"meal_slot"`
	Items      []DailyMenuItem `json:"items"`
}

// DailyMenuEntry is one row of a daily menu update. A nil StockQty means unlimited.
type DailyMenuEntry struct {
	MenuItemID  string `json:"menu_item_id"`
	StockQty    *int   `json:"stock_qty"`
	IsAvailable bool   `json:"is_available"`
}

type SaveDailyMenuRequest struct {
	LocationID string           `json:"location_id"`
	MenuDate   string           `json:"menu_date"`
	MealSlot   string           `json:"meal_slot"`
	Items      []DailyMenuEntry `json:"items"`
}

type SaveDailyMenuResponse struct {
	OK          bool   `json:"ok"`
	DailyMenuID string `json:"daily_menu_id"`
	ItemsCount  int    `json:"items_count"`
}

type OrderLine struct {
	Name      string           `json:"name"`
	Qty       int              `json:"qty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type OrderUser struct {
	DisplayName string `json:"display_name"`
}

// QueueOrder is a paid order waiting in the kitchen
type QueueOrder struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	ScheduledFor string          `json:"scheduled_for"`
	Total        decimal.Decimal `json:"total"`
	Items        []OrderLine     `json:"items"`
	User         OrderUser       `json:"user"`
}

type QueueResponse struct {
	Orders []QueueOrder `json:"orders"`
}

type ReadyResponse struct {
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	PickupCode string `json:"pickup_code"`
	CellCode   string `json:"cell_code,omitempty"`
}

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Qty        int    `json:"qty"`
}

// CreateOrderRequest places an order. A nil ScheduledFor lets the backend pick the time.
type CreateOrderRequest struct {
	LocationID   string             `json:"location_id"`
	ScheduledFor *string            `json:"scheduled_for"`
	Items        []OrderItemRequest `json:"items"`
}

type CreatedOrderItem struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Qty        int             `json:"qty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type CreateOrderResponse struct {
	OrderID      string             `json:"order_id"`
	Status       string             `json:"status"`
	Total        decimal.Decimal    `json:"total"`
	ScheduledFor string             `json:"scheduled_for"`
	Items        []CreatedOrderItem `json:"items"`
	CreatedAt    string             `json:"created_at"`
}

type Receipt struct {
	ID      string          `json:"id"`
	OrderID string          `json:"order_id"`
	Items   []OrderLine     `json:"items"`
	Total   decimal.Decimal `json:"total"`
	PaidAt  string          `json:"paid_at"`
}

type PaymentResponse struct {
	Success bool     `json:"success"`
	OrderID string   `json:"order_id"`
	Status  string   `json:"status"`
	Receipt *Receipt `json:"receipt"`
}

// Order is an order of the current user
type Order struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	Items      []OrderLine     `json:"items"`
	Total      decimal.Decimal `json:"total"`
	PickupCode string          `json:"pickup_code"`
	CreatedAt  string          `json:"created_at"`
}

type MyOrdersResponse struct {
	Orders []Order `json:"orders"`
}

// ClaimRequest carries the pickup code under both names the backend accepts
type ClaimRequest struct {
	OrderID    string `json:"order_id"`
	PickupCode string `json:"pickup_code"`
	PinCode    string `json:"pin_code"`
}

type ClaimResponse struct {
	Success  bool   `json:"success"`
	OrderID  string `json:"order_id"`
	CellCode string `json:"cell_code"`
	Message  string `json:"message"`
}

// AdminUser is a user as listed by the admin endpoints
type AdminUser struct {
	ID          string      `json:"id"`
	Login       string      `json:"login"`
	Role        auth.Role   `json:"role"`
	DisplayName string      `json:"display_name"`
	OrgID       string      `json:"org_id"`
	GroupID     *string     `json:"group_id"`
	Group       *auth.Group `json:"group"`
}

type UsersResponse struct {
	Users []AdminUser `json:"users"`
}

type UserResponse struct {
	User AdminUser `json:"user"`
}

type CreateUserRequest struct {
	Login       string    `json:"login"`
	PIN         string    `json:"pin"`
	Role        auth.Role `json:"role"`
	DisplayName string    `json:"display_name"`
}

// UpdateUserRequest edits a user; an empty PIN keeps the current one
type UpdateUserRequest struct {
	Role        auth.Role `json:"role"`
	DisplayName string    `json:"display_name"`
	PIN         string    `json:"pin,omitempty"`
}

type AdminMenuItem struct {
	ID        string          `json:"id"`
	NameKZ    string          `json:"name_kz"`
	NameRU    string          `json:"name_ru"`
	NameEN    string          `json:"name_en"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Qty       int             `json:"qty"`
	Available bool            `json:"available"`
}

type AdminMenuResponse struct {
	Items []AdminMenuItem `json:"items"`
}

type AdminMenuUpdate struct {
	ID        string `json:"id"`
	Qty       int    `json:"qty"`
	Available bool   `json:"available"`
}

type AdminMenuRequest struct {
	Items []AdminMenuUpdate `json:"items"`
}

type GroupsResponse struct {
	Groups []auth.Group `json:"groups"`
}

type GroupResponse struct {
	Group auth.Group `json:"group"`
}

type CreateGroupRequest struct {
	Name string         `json:"name"`
	Type auth.GroupType `json:"type"`
}

type AssignGroupRequest struct {
	GroupID string `json:"group_id"`
}

// Result is the generic {success, message} answer
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
