package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetURL returns a base URL without the trailing slash
func GetURL(key, defaultValue string) string {
	return strings.TrimRight(GetEnv(key, defaultValue), "/")
}

// Server
const (
	EnvListenAddr = "LISTEN_ADDR"
)

// Canteen backend API
const (
	EnvAPIBaseURL = "API_BASE_URL"
	EnvAPITimeout = "API_TIMEOUT"
	EnvLocationID = "LOCATION_ID"
)

// Session storage
const (
	EnvStoreDriver            = "STORE_DRIVER"
	EnvSQLitePath             = "SQLITE_PATH"
	EnvRedisURL               = "REDIS_URL"
	EnvSessionDuration        = "SESSION_DURATION"
	EnvSessionCleanupInterval = "SESSION_CLEANUP_INTERVAL"
	EnvSecureCookies          = "SECURE_COOKIES"
)

// UI
const (
	EnvDefaultLang = "DEFAULT_LANG"
)

// Defaults used when a key is not set
const (
	DefaultListenAddr = ":8080"
	DefaultAPIBaseURL = "http://localhost:5000/api"
	DefaultLocationID = "loc-1"
	DefaultSQLitePath = "./internal/databases/web.db"
	DefaultRedisURL   = "redis://localhost:6379/2"
)

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
