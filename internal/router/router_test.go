package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"canteen-web/internal/auth"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		loggedIn bool
		role     auth.Role
		route    Route
		want     Decision
	}{
		{"anonymous to menu", false, "", Menu, Decision{Redirect, Login}},
		{"anonymous to admin", false, "", Admin, Decision{Redirect, Login}},
		{"anonymous to login", false, "", Login, Decision{Render, Login}},
		{"anonymous to empty", false, "", "", Decision{Render, Login}},
		{"cook to admin", true, auth.RoleCook, Admin, Decision{Redirect, Cook}},
		{"admin to cook", true, auth.RoleAdmin, Cook, Decision{Redirect, Admin}},
		{"admin to daily menu", true, auth.RoleAdmin, DailyMenu, Decision{Render, DailyMenu}},
		{"student to cart", true, auth.RoleStudent, Cart, Decision{Render, Cart}},
		{"user to checkout", true, auth.RoleUser, Checkout, Decision{Render, Checkout}},
		{"student to daily menu", true, auth.RoleStudent, DailyMenu, Decision{Redirect, Menu}},
		{"cook to pickup", true, auth.RoleCook, Pickup, Decision{Render, Pickup}},
		{"cook to menu", true, auth.RoleCook, Menu, Decision{Redirect, Cook}},
		{"unknown role uses student pages", true, "guest", Cart, Decision{Render, Cart}},
		{"unknown role to admin", true, "guest", Admin, Decision{Redirect, Menu}},
		{"logged in to login", true, auth.RoleAdmin, Login, Decision{Render, Login}},
		{"logged in to unknown page", true, auth.RoleCook, "reports", Decision{Redirect, Cook}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.loggedIn, tt.role, tt.route))
		})
	}
}

func TestDefaultRoute(t *testing.T) {
	assert.Equal(t, Admin, DefaultRoute(auth.RoleAdmin))
	assert.Equal(t, Cook, DefaultRoute(auth.RoleCook))
	assert.Equal(t, Menu, DefaultRoute(auth.RoleStudent))
	assert.Equal(t, Menu, DefaultRoute(""))
}

func TestDefaultRouteIsAlwaysAccessible(t *testing.T) {
	for _, role := range append(auth.Roles, auth.RoleStudent) {
		assert.True(t, CanAccess(role, DefaultRoute(role)), role)
	}
}

func TestNav(t *testing.T) {
	assert.Nil(t, Nav(false, auth.RoleAdmin, Login))

	items := Nav(true, auth.RoleCook, Cook)
	assert.Len(t, items, len(NavRoutes))

	visible := map[Route]bool{}
	for _, it := range items {
		if it.Visible {
			visible[it.Route] = true
		}
		assert.Equal(t, it.Route == Cook, it.Active)
	}
	assert.Equal(t, map[Route]bool{Cook: true, DailyMenu: true, Pickup: true}, visible)
	assert.Equal(t, "/daily-menu", items[4].Path())
	assert.Equal(t, "dailyMenu", items[4].Label)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(Login))
	assert.True(t, Known(MyOrders))
	assert.False(t, Known("settings"))
}
