// Package store keeps the per-browser state of the web client (token, user profile, cart,
// last order, language) in a persistent key-value backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownDriver = errors.New("unknown store driver")
	ErrEmptySession  = errors.New("empty session id")
)

// Backend is a persistent key-value storage with one namespace per browser session
type Backend interface {
	// Get returns the value stored under key; ok is false when the key is absent
	Get(ctx context.Context, sid, key string) (value string, ok bool, err error)
	Set(ctx context.Context, sid, key, value string) error
	Delete(ctx context.Context, sid string, keys ...string) error
	// Touch creates the namespace if needed and moves its expiry to now+ttl
	Touch(ctx context.Context, sid string, ttl time.Duration) error
	// Drop removes the namespace and every key in it
	Drop(ctx context.Context, sid string) error
	// CleanupExpired removes expired namespaces and returns how many were removed
	CleanupExpired(ctx context.Context) (int64, error)
	Close() error
}

// Driver names accepted by Open
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options configures Open
type Options struct {
	Driver     string
	SQLitePath string
	RedisURL   string
}

// Open creates the backend selected by opts.Driver
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		return OpenSQLite(opts.SQLitePath)
	case DriverRedis:
		return OpenRedis(ctx, opts.RedisURL)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
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
