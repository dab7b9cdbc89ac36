package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping() error { return p.err }

func newSystemRouter(db DatabasePinger) (*gin.Engine, *SystemHandler) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewSystemHandler(db)
	h.RegisterRoutes(engine.Group("/api/v1"))
	engine.GET("/health", h.Health)
	return engine, h
}

func TestSystemHandler_Ping(t *testing.T) {
	engine, _ := newSystemRouter(&stubPinger{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	engine, _ := newSystemRouter(&stubPinger{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Name      string `json:"name"`
			GoVersion string `json:"go_version"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OrderSync Backend API", body.Data.Name)
	assert.NotEmpty(t, body.Data.GoVersion)
}

func TestSystemHandler_Health(t *testing.T) {
	engine, _ := newSystemRouter(&stubPinger{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSystemHandler_HealthDatabaseDown(t *testing.T) {
	engine, _ := newSystemRouter(&stubPinger{err: assert.AnError})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UNAVAILABLE")
}
