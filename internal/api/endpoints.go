package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

func withQuery(endpoint string, q url.Values) string {
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}

// Health checks the backend's /health route, which lives next to the API root
func (c *Client) Health(ctx context.Context) error {
	root := &Client{baseURL: strings.TrimSuffix(c.baseURL, "/api"), http: c.http}
	var out struct {
		Status string `json:"status"`
	}
	return root.Do(ctx, "", http.MethodGet, "/health", nil, &out)
}

// Login exchanges login and PIN for an access token
func (c *Client) Login(ctx context.Context, login, pin string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.Do(ctx, "", http.MethodPost, LoginEndpoint, LoginRequest{Login: login, PIN: pin}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Menu returns the menu of one day. Both the date and its weekday are sent.
func (c *Client) Menu(ctx context.Context, token string, q MenuQuery) (*MenuResponse, error) {
	params := url.Values{}
	params.Set("location_id", q.LocationID)
	if q.Date != "" {
		params.Set("date", q.Date)
	}
	if q.Day >= 1 && q.Day <= 5 {
		params.Set("day", strconv.Itoa(q.Day))
	}
	var out MenuResponse
	if err := c.Do(ctx, token, http.MethodGet, withQuery("/menu", params), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Catalog(ctx context.Context, token, locationID string) (*CatalogResponse, error) {
	var out CatalogResponse
	q := url.Values{"location_id": {locationID}}
	if err := c.Do(ctx, token, http.MethodGet, withQuery("/catalog", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DailyMenu(ctx context.Context, token, locationID, date, mealSlot string) (*DailyMenuResponse, error) {
	if mealSlot == "" {
		mealSlot = DefaultMealSlot
	}
	q := url.Values{"location_id": {locationID}, "meal_slot": {mealSlot}}
	if date != "" {
		q.Set("date", date)
	}
	var out DailyMenuResponse
	if err := c.Do(ctx, token, http.MethodGet, withQuery("/cook/daily-menu", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveDailyMenu(ctx context.Context, token string, req SaveDailyMenuRequest) (*SaveDailyMenuResponse, error) {
	if req.MealSlot == "" {
		req.MealSlot = DefaultMealSlot
	}
	if req.Items == nil {
		req.Items = []DailyMenuEntry{}
	}
	var out SaveDailyMenuResponse
	if err := c.Do(ctx, token, http.MethodPut, "/cook/daily-menu", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CookQueue(ctx context.Context, token, locationID string) (*QueueResponse, error) {
	var out QueueResponse
	q := url.Values{"location_id": {locationID}}
	if err := c.Do(ctx, token, http.MethodGet, withQuery("/cook/orders/queue", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkReady moves an order to READY and returns its pickup code
func (c *Client) MarkReady(ctx context.Context, token, orderID string) (*ReadyResponse, error) {
	var out ReadyResponse
	endpoint := "/cook/orders/" + url.PathEscape(orderID) + "/ready"
	if err := c.Do(ctx, token, http.MethodPost, endpoint, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*CreateOrderResponse, error) {
	var out CreateOrderResponse
	if err := c.Do(ctx, token, http.MethodPost, "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FakePayment marks a created order as paid
func (c *Client) FakePayment(ctx context.Context, token, orderID string) (*PaymentResponse, error) {
	var out PaymentResponse
	body := map[string]string{"order_id": orderID}
	if err := c.Do(ctx, token, http.MethodPost, "/payments/fake", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyOrders(ctx context.Context, token string) (*MyOrdersResponse, error) {
	var out MyOrdersResponse
	if err := c.Do(ctx, token, http.MethodGet, "/orders/my", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClaimPickup hands an order over to its owner
func (c *Client) ClaimPickup(ctx context.Context, token, orderID, code string) (*ClaimResponse, error) {
	var out ClaimResponse
	req := ClaimRequest{OrderID: orderID, PickupCode: code, PinCode: code}
	if err := c.Do(ctx, token, http.MethodPost, "/pickup/claim", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUsers(ctx context.Context, token string) (*UsersResponse, error) {
	var out UsersResponse
	if err := c.Do(ctx, token, http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminCreateUser(ctx context.Context, token string, req CreateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.Do(ctx, token, http.MethodPost, "/admin/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateUser(ctx context.Context, token, userID string, req UpdateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.Do(ctx, token, http.MethodPut, "/admin/users/"+url.PathEscape(userID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminDeleteUser(ctx context.Context, token, userID string) (*Result, error) {
	var out Result
	if err := c.Do(ctx, token, http.MethodDelete, "/admin/users/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminMenu(ctx context.Context, token string) (*AdminMenuResponse, error) {
	var out AdminMenuResponse
	if err := c.Do(ctx, token, http.MethodGet, "/admin/menu", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminSaveMenu updates qty and availability and returns the refreshed menu
func (c *Client) AdminSaveMenu(ctx context.Context, token string, items []AdminMenuUpdate) (*AdminMenuResponse, error) {
	if items == nil {
		items = []AdminMenuUpdate{}
	}
	var out AdminMenuResponse
	if err := c.Do(ctx, token, http.MethodPut, "/admin/menu", AdminMenuRequest{Items: items}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminGroups(ctx context.Context, token string) (*GroupsResponse, error) {
	var out GroupsResponse
	if err := c.Do(ctx, token, http.MethodGet, "/admin/groups", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminCreateGroup(ctx context.Context, token string, req CreateGroupRequest) (*GroupResponse, error) {
	var out GroupResponse
	if err := c.Do(ctx, token, http.MethodPost, "/admin/groups", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminAssignGroup puts a user into a group
func (c *Client) AdminAssignGroup(ctx context.Context, token, userID, groupID string) (*UserResponse, error) {
	var out UserResponse
	endpoint := "/admin/users/" + url.PathEscape(userID) + "/group"
	if err := c.Do(ctx, token, http.MethodPut, endpoint, AssignGroupRequest{GroupID: groupID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminUnassignGroup removes a user from its group
func (c *Client) AdminUnassignGroup(ctx context.Context, token, userID string) (*UserResponse, error) {
	var out UserResponse
	endpoint := "/admin/users/" + url.PathEscape(userID) + "/group"
	if err := c.Do(ctx, token, http.MethodDelete, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
