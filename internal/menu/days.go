package menu

import (
	"fmt"
	"math/rand"
	"time"

	"canteen-web/internal/api"
)

// DateLayout is the wire format of menu dates
const DateLayout = "2006-01-02"

// DefaultDays is how many days the date selector offers, today included
const DefaultDays = 4

// Translator is the part of the i18n bundle used here
type Translator interface {
	T(lang, key string) string
}

var weekdayKeys = [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DateOptions returns n consecutive days starting with the day of now
func DateOptions(now time.Time, n int) []time.Time {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}
	return out
}

// FormatDate renders d as YYYY-MM-DD
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// SelectDate returns the requested day when it is one of the offered options, otherwise the first one
func SelectDate(requested string, options []time.Time) time.Time {
	for _, d := range options {
		if FormatDate(d) == requested {
			return d
		}
	}
	return options[0]
}

// DateLabel renders a day as a short weekday name plus dd.mm
func DateLabel(tr Translator, lang string, d time.Time) string {
	return fmt.Sprintf("%s %02d.%02d", tr.T(lang, weekdayKeys[d.Weekday()]), d.Day(), int(d.Month()))
}

// WeekdayForMenu maps a date to the menu day 1 (Monday) to 5 (Friday). Weekends get Monday's menu.
func WeekdayForMenu(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 || wd == 6 {
		return 1
	}
	return wd
}

// Group is a run of items sharing a category
type Group[T any] struct {
	Name  string
	Items []T
}

// GroupBy splits items by key, keeping categories in first-seen order
func GroupBy[T any](items []T, key func(T) string) []Group[T] {
	var groups []Group[T]
	index := make(map[string]int)
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Name: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// GroupByCategory groups menu items by their category
func GroupByCategory(items []api.MenuItem) []Group[api.MenuItem] {
	return GroupBy(items, func(m api.MenuItem) string { return m.Category })
}

// Recommend picks up to n random available items
func Recommend(items []api.MenuItem, n int, rng *rand.Rand) []api.MenuItem {
	pool := make([]api.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Available() {
			pool = append(pool, item)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
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
