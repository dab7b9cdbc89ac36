package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordersync/backend/internal/domain/canonical"
	"github.com/ordersync/backend/internal/infrastructure/scheduler"
)

type stubImportService struct {
	passID  string
	err     error
	records []scheduler.PassRecord
}

func (s *stubImportService) TriggerNow() (string, error)     { return s.passID, s.err }
func (s *stubImportService) History() []scheduler.PassRecord { return s.records }

func newImportRouter(service ImportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewImportHandler(service).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestImportHandler_TriggerImport(t *testing.T) {
	engine := newImportRouter(&stubImportService{passID: "pass-42"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/trigger", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			PassID string `json:"pass_id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "pass-42", body.Data.PassID)
	assert.Equal(t, "started", body.Data.Status)
}

func TestImportHandler_TriggerImportConflict(t *testing.T) {
	engine := newImportRouter(&stubImportService{err: scheduler.ErrPassInProgress})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/trigger", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_PASS_IN_PROGRESS")
}

func TestImportHandler_TriggerImportFailure(t *testing.T) {
	engine := newImportRouter(&stubImportService{err: assert.AnError})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/trigger", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INTERNAL")
}

func TestImportHandler_ListPasses(t *testing.T) {
	started := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	engine := newImportRouter(&stubImportService{
		records: []scheduler.PassRecord{
			{
				ID:         "pass-2",
				Trigger:    scheduler.TriggerManual,
				StartedAt:  started.Add(time.Hour),
				FinishedAt: started.Add(time.Hour + time.Minute),
				Result:     &canonical.ImportResult{TotalProcessed: 10, SuccessCount: 9, FailedCount: 1},
			},
			{
				ID:        "pass-1",
				Trigger:   scheduler.TriggerScheduled,
				StartedAt: started,
				Error:     "fetch: timeout",
			},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/import/passes", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    []struct {
			ID      string `json:"id"`
			Trigger string `json:"trigger"`
			Error   string `json:"error"`
			Result  *struct {
				TotalProcessed int `json:"totalProcessed"`
				SuccessCount   int `json:"successCount"`
			} `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "pass-2", body.Data[0].ID, "newest first")
	assert.Equal(t, "manual", body.Data[0].Trigger)
	require.NotNil(t, body.Data[0].Result)
	assert.Equal(t, 10, body.Data[0].Result.TotalProcessed)
	assert.Equal(t, "fetch: timeout", body.Data[1].Error)
	assert.Nil(t, body.Data[1].Result)
}

func TestImportHandler_ListPassesEmpty(t *testing.T) {
	engine := newImportRouter(&stubImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/import/passes", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}
