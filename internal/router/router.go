// Package router decides which page a browser may see given its login state and role.
package router

import (
	"canteen-web/internal/auth"
)

// Route is a named page
type Route string

const (
	Login     Route = "login"
	Menu      Route = "menu"
	Cart      Route = "cart"
	Checkout  Route = "checkout"
	Cook      Route = "cook"
	DailyMenu Route = "daily-menu"
	Pickup    Route = "pickup"
	MyOrders  Route = "my-orders"
	Admin     Route = "admin"
)

// NavRoutes are the pages listed in the navigation bar, in display order
var NavRoutes = []Route{Menu, Cart, Checkout, Cook, DailyMenu, Pickup, MyOrders, Admin}

// navLabels are the i18n keys of the navigation buttons
var navLabels = map[Route]string{
	Menu:      "menu",
	Cart:      "cart",
	Checkout:  "checkout",
	Cook:      "cook",
	DailyMenu: "dailyMenu",
	Pickup:    "pickup",
	MyOrders:  "myOrders",
	Admin:     "admin",
}

var studentRoutes = []Route{Menu, Cart, Checkout, Pickup, MyOrders}

var roleRoutes = map[auth.Role][]Route{
	auth.RoleStudent: studentRoutes,
	auth.RoleUser:    studentRoutes,
	auth.RoleCook:    {Cook, DailyMenu, Pickup},
	auth.RoleAdmin:   {Menu, Admin, DailyMenu, MyOrders},
}

// Allowed returns the pages of a role. Unknown roles get the student pages.
func Allowed(role auth.Role) []Route {
	if routes, ok := roleRoutes[role]; ok {
		return routes
	}
	return studentRoutes
}

// DefaultRoute is where a role lands after login
func DefaultRoute(role auth.Role) Route {
	switch role {
	case auth.RoleAdmin:
		return Admin
	case auth.RoleCook:
		return Cook
	default:
		return Menu
	}
}

// CanAccess reports whether role may open route. Login is open to everyone.
func CanAccess(role auth.Role, route Route) bool {
	if route == Login {
		return true
	}
	for _, r := range Allowed(role) {
		if r == route {
			return true
		}
	}
	return false
}

// Known reports whether route names a page
func Known(route Route) bool {
	if route == Login {
		return true
	}
	_, ok := navLabels[route]
	return ok
}

// Action is the outcome of a navigation
type Action int

const (
	// Render shows the requested page
	Render Action = iota
	// Redirect sends the browser to another page
	Redirect
)

// Decision is the result of Resolve
type Decision struct {
	Action Action
	Route  Route
}

// Resolve applies the login and role guards to a navigation. An empty route means login.
func Resolve(loggedIn bool, role auth.Role, route Route) Decision {
	if route == "" {
		route = Login
	}
	if !loggedIn && route != Login {
		return Decision{Action: Redirect, Route: Login}
	}
	if loggedIn && !CanAccess(role, route) {
		return Decision{Action: Redirect, Route: DefaultRoute(role)}
	}
	return Decision{Action: Render, Route: route}
}

// NavItem is one button of the navigation bar
type NavItem struct {
	Route   Route
	Label   string // i18n key
	Visible bool
	Active  bool
}

// Path returns the URL path of the page
func (n NavItem) Path() string {
	return "/" + string(n.Route)
}

// Nav computes the navigation bar for a role with active as the current page.
// A logged-out browser has no navigation.
func Nav(loggedIn bool, role auth.Role, active Route) []NavItem {
	if !loggedIn {
		return nil
	}
	items := make([]NavItem, 0, len(NavRoutes))
	for _, r := range NavRoutes {
		items = append(items, NavItem{
			Route:   r,
			Label:   navLabels[r],
			Visible: CanAccess(role, r),
			Active:  r == active,
		})
	}
	return items
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
