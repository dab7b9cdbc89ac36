package ecommerce

import (
	"context"
	"encoding/json"
	"io"
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

func TestTikTokConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *TikTokConfig
		wantErr error
	}{
		{
			name:    "valid config",
			config:  NewTikTokConfig("app", "secret", "token", "shop"),
			wantErr: nil,
		},
		{
			name:    "missing app key",
			config:  &TikTokConfig{AppSecret: "secret", AccessToken: "token", ShopID: "shop"},
			wantErr: ErrTikTokConfigMissingAppKey,
		},
		{
			name:    "missing app secret",
			config:  &TikTokConfig{AppKey: "app", AccessToken: "token", ShopID: "shop"},
			wantErr: ErrTikTokConfigMissingAppSecret,
		},
		{
			name:    "missing access token",
			config:  &TikTokConfig{AppKey: "app", AppSecret: "secret", ShopID: "shop"},
			wantErr: ErrTikTokConfigMissingAccessToken,
		},
		{
			name:    "missing shop id",
			config:  &TikTokConfig{AppKey: "app", AppSecret: "secret", AccessToken: "token"},
			wantErr: ErrTikTokConfigMissingShopID,
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
		})
	}
}

func TestTikTokConfig_Sign(t *testing.T) {
	cfg := NewTikTokConfig("app", "secret", "token", "shop")
	params := map[string]string{
		"app_key":      "app",
		"timestamp":    "1700000000",
		"access_token": "token",
	}

	sign := cfg.Sign("/api/orders/search", params, `{"page_number":1}`)
	assert.Len(t, sign, 64)
	assert.Equal(t, sign, cfg.Sign("/api/orders/search", params, `{"page_number":1}`), "deterministic")
	assert.NotEqual(t, sign, cfg.Sign("/api/orders/search", params, `{"page_number":2}`), "body bound")

	// The access token never feeds the signature
	params["access_token"] = "rotated"
	assert.Equal(t, sign, cfg.Sign("/api/orders/search", params, `{"page_number":1}`))
}

// ---------------------------------------------------------------------------
// Client Tests
// ---------------------------------------------------------------------------

func TestTikTokClient_FetchPage(t *testing.T) {
	var gotQuery map[string]string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 0,
			"message": "success",
			"data": {
				"total": 2,
				"orders": [{"order_id": "TT-1"}, {"order_id": "TT-2"}]
			}
		}`))
	}))
	defer server.Close()

	cfg := NewTikTokConfig("app", "secret", "token", "shop")
	cfg.APIBaseURL = server.URL
	client, err := NewTikTokClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, canonical.PlatformTikTok, client.Platform())

	date := time.Date(2025, 8, 15, 18, 0, 0, 0, time.UTC)
	raws, err := client.FetchPage(context.Background(), date, 1, 25)
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.JSONEq(t, `{"order_id": "TT-1"}`, string(raws[0]))

	assert.Equal(t, "app", gotQuery["app_key"])
	assert.Equal(t, "shop", gotQuery["shop_id"])
	assert.NotEmpty(t, gotQuery["sign"])

	assert.Equal(t, float64(1), gotBody["page_number"])
	assert.Equal(t, float64(25), gotBody["page_size"])
	assert.Equal(t, float64(1755216000), gotBody["create_time_from"])
	assert.Equal(t, float64(1755302400), gotBody["create_time_to"])
}

func TestTikTokClient_FetchPageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code": 105001, "message": "access token expired"}`))
	}))
	defer server.Close()

	cfg := NewTikTokConfig("app", "secret", "token", "shop")
	cfg.APIBaseURL = server.URL
	client, err := NewTikTokClient(cfg)
	require.NoError(t, err)

	_, err = client.FetchPage(context.Background(), time.Now(), 1, 10)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "105001")
}

func TestTikTokClient_FetchPageHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := NewTikTokConfig("app", "secret", "token", "shop")
	cfg.APIBaseURL = server.URL
	client, err := NewTikTokClient(cfg)
	require.NoError(t, err)

	_, err = client.FetchPage(context.Background(), time.Now(), 1, 10)
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestNewTikTokClient_InvalidConfig(t *testing.T) {
	_, err := NewTikTokClient(&TikTokConfig{})
	assert.ErrorIs(t, err, ErrTikTokConfigMissingAppKey)
}
