package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(probes ...Probe) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	RegisterRoutes(r, probes...)
	return r
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}

func TestRequestIDIsReused(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	assert.Equal(t, "rid-1", w.Header().Get(HeaderRequestID))
}

func TestStatusAllProbesPass(t *testing.T) {
	ok := Probe{Name: "store", Check: func(ctx context.Context) error { return nil }}

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set(HeaderRequestID, "rid-2")
	w := httptest.NewRecorder()
	newRouter(ok).ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data     StatusResponse `json:"data"`
		Errors   []string       `json:"errors"`
		Metadata Metadata       `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Errors)
	assert.True(t, body.Data.Checks["store"].OK)
	assert.Equal(t, "rid-2", body.Metadata.RequestID)
	assert.Equal(t, Version, body.Metadata.Version)
}

func TestStatusFailedProbe(t *testing.T) {
	down := Probe{Name: "api", Check: func(ctx context.Context) error { return errors.New("connection refused") }}
	up := Probe{Name: "store", Check: func(ctx context.Context) error { return nil }}

	w := httptest.NewRecorder()
	newRouter(up, down).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Data   StatusResponse `json:"data"`
		Errors []string       `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"api: connection refused"}, body.Errors)
	assert.False(t, body.Data.Checks["api"].OK)
	assert.Equal(t, "connection refused", body.Data.Checks["api"].Error)
	assert.True(t, body.Data.Checks["store"].OK)
}

func TestCreateAPIResponseFillsDefaults(t *testing.T) {
	res := CreateAPIResponse(nil, nil, "")
	assert.NotNil(t, res.Errors)
	assert.Len(t, res.Metadata.RequestID, 36)

	res = CreateErrorResponseWithRequestID([]string{"not found"}, "rid")
	assert.Nil(t, res.Data)
	assert.Equal(t, []string{"not found"}, res.Errors)
	assert.Equal(t, "rid", res.Metadata.RequestID)
}
