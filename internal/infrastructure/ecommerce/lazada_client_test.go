package ecommerce

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestLazadaConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *LazadaConfig
		wantErr error
	}{
		{
			name:    "valid config",
			config:  NewLazadaConfig("app", "secret", "token"),
			wantErr: nil,
		},
		{
			name:    "missing app key",
			config:  &LazadaConfig{AppSecret: "secret", AccessToken: "token"},
			wantErr: ErrLazadaConfigMissingAppKey,
		},
		{
			name:    "missing app secret",
			config:  &LazadaConfig{AppKey: "app", AccessToken: "token"},
			wantErr: ErrLazadaConfigMissingAppSecret,
		},
		{
			name:    "missing access token",
			config:  &LazadaConfig{AppKey: "app", AppSecret: "secret"},
			wantErr: ErrLazadaConfigMissingAccessToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, LazadaVietnamAPIURL, tt.config.APIBaseURL)
		})
	}
}

func TestLazadaConfig_Sign(t *testing.T) {
	cfg := NewLazadaConfig("app", "secret", "token")
	params := map[string]string{
		"app_key":   "app",
		"timestamp": "1700000000000",
		"limit":     "100",
	}

	sign := cfg.Sign("/orders/get", params)
	assert.Len(t, sign, 64)
	assert.Equal(t, sign, cfg.Sign("/orders/get", params), "deterministic")

	// Uppercase hex per the platform convention
	for _, ch := range sign {
		assert.Contains(t, "0123456789ABCDEF", string(ch))
	}

	// The sign parameter itself never feeds the signature
	params["sign"] = sign
	assert.Equal(t, sign, cfg.Sign("/orders/get", params))

	params["limit"] = "50"
	assert.NotEqual(t, sign, cfg.Sign("/orders/get", params), "parameter bound")
}

// ---------------------------------------------------------------------------
// Client Tests
// ---------------------------------------------------------------------------

func TestLazadaClient_FetchPage(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "0",
			"request_id": "0b86",
			"data": {
				"count": 1,
				"orders": [{"order_number": 12345}]
			}
		}`))
	}))
	defer server.Close()

	cfg := NewLazadaConfig("app", "secret", "token")
	cfg.APIBaseURL = server.URL
	client, err := NewLazadaClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, canonical.PlatformLazada, client.Platform())

	date := time.Date(2025, 8, 15, 8, 0, 0, 0, time.UTC)
	raws, err := client.FetchPage(context.Background(), date, 3, 20)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.JSONEq(t, `{"order_number": 12345}`, string(raws[0]))

	assert.Equal(t, "app", gotQuery["app_key"])
	assert.Equal(t, "sha256", gotQuery["sign_method"])
	assert.NotEmpty(t, gotQuery["sign"])
	assert.Equal(t, "40", gotQuery["offset"], "page 3 starts after two full pages")
	assert.Equal(t, "20", gotQuery["limit"])
	assert.Equal(t, "2025-08-15T00:00:00Z", gotQuery["created_after"])
	assert.Equal(t, "2025-08-16T00:00:00Z", gotQuery["created_before"])
}

func TestLazadaClient_FetchPageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code": "IllegalAccessToken", "message": "The access token is invalid"}`))
	}))
	defer server.Close()

	cfg := NewLazadaConfig("app", "secret", "token")
	cfg.APIBaseURL = server.URL
	client, err := NewLazadaClient(cfg)
	require.NoError(t, err)

	_, err = client.FetchPage(context.Background(), time.Now(), 1, 10)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "IllegalAccessToken")
}

func TestLazadaClient_FetchPageMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer server.Close()

	cfg := NewLazadaConfig("app", "secret", "token")
	cfg.APIBaseURL = server.URL
	client, err := NewLazadaClient(cfg)
	require.NoError(t, err)

	_, err = client.FetchPage(context.Background(), time.Now(), 1, 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestNewLazadaClient_InvalidConfig(t *testing.T) {
	_, err := NewLazadaClient(&LazadaConfig{})
	assert.ErrorIs(t, err, ErrLazadaConfigMissingAppKey)
}
