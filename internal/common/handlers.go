package common

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// probeTimeout bounds every dependency check of Status
const probeTimeout = 3 * time.Second

// Probe checks one dependency of the server
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

type ProbeResult struct {
	OK      bool   `json:"ok"`
	Latency string `json:"latency"`
	Error   string `json:"error,omitempty"`
}

type StatusResponse struct {
	Uptime string                 `json:"uptime"`
	Checks map[string]ProbeResult `json:"checks"`
}

// Uptime Logic
var startTime time.Time

func uptime() time.Duration {
	return time.Since(startTime)
}

func init() {
	startTime = time.Now()
}

// Ping Logic
func ping(ctx context.Context, p Probe) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	err := p.Check(ctx)
	result := ProbeResult{OK: err == nil, Latency: time.Since(start).String()}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

// Health answers load balancer checks
// GET /healthz
func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Status reports uptime and the state of every probe. A failed probe turns the answer into a 503.
// GET /api/status
func Status(probes ...Probe) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := StatusResponse{
			Uptime: uptime().Truncate(time.Second).String(),
			Checks: make(map[string]ProbeResult, len(probes)),
		}
		var failed []string
		for _, p := range probes {
			result := ping(c.Request.Context(), p)
			data.Checks[p.Name] = result
			if !result.OK {
				failed = append(failed, p.Name+": "+result.Error)
			}
		}

		rid := RequestIDFrom(c)
		if len(failed) > 0 {
			response := CreateAPIResponse(data, failed, rid)
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
		c.JSON(http.StatusOK, CreateSuccessResponseWithRequestID(data, rid))
	}
}

// RegisterRoutes registers the health and status routes
func RegisterRoutes(router gin.IRoutes, probes ...Probe) {
	router.GET("/healthz", Health)
	router.GET("/api/status", Status(probes...))
}

//This project is the web client of the Smart Canteen ordering service. It renders the menu, cart, kitchen and admin pages on top of the canteen backend API.
//Smart Canteen Web Copyright (C) 2025 Smart Canteen contributors
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
