package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"canteen-web/internal/api"
	"canteen-web/internal/common"
	"canteen-web/internal/env"
	"canteen-web/internal/i18n"
	"canteen-web/internal/session"
	"canteen-web/internal/store"
	"canteen-web/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listenAddr := env.GetEnv(env.EnvListenAddr, env.DefaultListenAddr)
	apiBaseURL := env.GetURL(env.EnvAPIBaseURL, env.DefaultAPIBaseURL)
	apiTimeout := env.GetDuration(env.EnvAPITimeout, api.DefaultTimeout)
	storeOpts := store.Options{
		Driver:     env.GetEnv(env.EnvStoreDriver, store.DriverSQLite),
		SQLitePath: env.GetEnv(env.EnvSQLitePath, env.DefaultSQLitePath),
		RedisURL:   env.GetEnv(env.EnvRedisURL, env.DefaultRedisURL),
	}
	locationID := env.GetEnv(env.EnvLocationID, env.DefaultLocationID)
	log.Printf("[config] listen=%s api=%s timeout=%s store=%s location=%q",
		listenAddr, apiBaseURL, apiTimeout, storeOpts.Driver, locationID)

	// Session storage
	backend, err := store.Open(ctx, storeOpts)
	if err != nil {
		log.Fatal(err)
	}
	defer backend.Close()

	sessions := session.NewManager(
		backend,
		env.GetDuration(env.EnvSessionDuration, session.DefaultDuration),
		env.GetBool(env.EnvSecureCookies, false),
	)
	janitor := session.NewJanitor(sessions, env.GetDuration(env.EnvSessionCleanupInterval, session.DefaultCleanupInterval))
	janitor.Start(ctx)

	// Backend API and pages
	client := api.New(apiBaseURL, apiTimeout)
	bundle, err := i18n.Load(env.GetEnv(env.EnvDefaultLang, i18n.DefaultLang))
	if err != nil {
		log.Fatal(err)
	}
	handler, err := web.NewHandler(client, bundle, web.Config{
		LocationID: locationID,
	})
	if err != nil {
		log.Fatal(err)
	}

	router := gin.Default()
	router.Use(common.RequestID())

	// Global routes
	common.RegisterRoutes(router,
		common.Probe{Name: "store", Check: func(ctx context.Context) error {
			_, _, err := backend.Get(ctx, "healthcheck", store.KeyToken)
			return err
		}},
		common.Probe{Name: "api", Check: client.Health},
	)

	web.RegisterRoutes(router, handler, sessions)

	srv := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	// Graceful shutdown handling
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()
		janitor.Stop()

		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[http] Shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
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
