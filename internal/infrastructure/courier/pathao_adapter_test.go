package courier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	courierdomain "github.com/shopops/backend/internal/domain/courier"
	"github.com/shopops/backend/internal/domain/shared"
)

func pathaoSettings(t *testing.T, baseURL string) *fakeSettings {
	t.Helper()
	settings := &fakeSettings{}
	require.NoError(t, settings.Set(context.Background(), PathaoConfigKey, PathaoConfig{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		Username:     "merchant@example.com",
		Password:     "pw",
		StoreID:      77,
		BaseURL:      baseURL,
	}))
	return settings
}

// pathaoMock serves the token endpoint plus whatever extra handler the test
// installs, counting token issues.
func pathaoMock(t *testing.T, tokenCalls *atomic.Int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/aladdin/api/v1/issue-token" {
			tokenCalls.Add(1)
			var req pathaoTokenRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "password", req.GrantType)
			w.Write([]byte(`{"access_token": "tok-1", "expires_in": 3600}`))
			return
		}
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		handler(w, r)
	}))
}

func TestPathaoAdapter_TokenCaching(t *testing.T) {
	var tokenCalls atomic.Int32
	server := pathaoMock(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"data": [{"city_id": 1, "city_name": "Dhaka"}]}}`))
	})
	defer server.Close()

	settings := pathaoSettings(t, server.URL)
	adapter := NewPathaoAdapter(settings, zap.NewNop(), 2*time.Second)
	ctx := context.Background()

	_, err := adapter.Cities(ctx)
	require.NoError(t, err)
	_, err = adapter.Cities(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), tokenCalls.Load(), "second call reuses the cached token")

	var cached PathaoToken
	found, err := shared.LoadJSON(ctx, settings, PathaoTokenKey, &cached)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "tok-1", cached.AccessToken)

	// Expiry carries the 60s safety margin: now + 3600 - 60.
	margin := time.Now().Add(3600*time.Second - tokenSafetyMargin).Unix()
	assert.InDelta(t, margin, cached.Expiry, 5)
}

func TestPathaoAdapter_ExpiredTokenRefreshes(t *testing.T) {
	var tokenCalls atomic.Int32
	server := pathaoMock(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"data": []}}`))
	})
	defer server.Close()

	settings := pathaoSettings(t, server.URL)
	require.NoError(t, settings.Set(context.Background(), PathaoTokenKey, PathaoToken{
		AccessToken: "tok-stale",
		Expiry:      time.Now().Add(-time.Minute).Unix(),
	}))

	adapter := NewPathaoAdapter(settings, zap.NewNop(), 2*time.Second)
	_, err := adapter.Cities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), tokenCalls.Load(), "stale token forces re-authentication")
}

func TestPathaoAdapter_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := NewPathaoAdapter(pathaoSettings(t, server.URL), zap.NewNop(), 2*time.Second)
	_, err := adapter.Cities(context.Background())
	assert.ErrorIs(t, err, courierdomain.ErrAuthFailed)
}

func TestPathaoAdapter_Unconfigured(t *testing.T) {
	adapter := NewPathaoAdapter(&fakeSettings{}, zap.NewNop(), 2*time.Second)

	_, err := adapter.CreateConsignment(context.Background(), courierdomain.ConsignmentRequest{OrderID: "1"})
	assert.ErrorIs(t, err, courierdomain.ErrNotConfigured)

	assert.True(t, adapter.Balance(context.Background()).IsZero())
}

func TestPathaoAdapter_CreateConsignment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var tokenCalls atomic.Int32
		server := pathaoMock(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/aladdin/api/v1/orders", r.URL.Path)

			var req pathaoOrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, 77, req.StoreID)
			assert.Equal(t, 1, req.RecipientCity)
			assert.Equal(t, 5, req.RecipientZone)
			assert.Equal(t, 9, req.RecipientArea)
			assert.Equal(t, 48, req.DeliveryType)
			assert.Equal(t, "300.00", req.AmountToCollect)

			w.Write([]byte(`{"message": "Order Created Successfully", "data": {"consignment_id": "DP-123", "order_status": "Pending"}}`))
		})
		defer server.Close()

		adapter := NewPathaoAdapter(pathaoSettings(t, server.URL), zap.NewNop(), 2*time.Second)
		consignment, err := adapter.CreateConsignment(context.Background(), courierdomain.ConsignmentRequest{
			OrderID:          "1002",
			RecipientName:    "Salma",
			RecipientPhone:   "01722222222",
			RecipientAddress: "Mirpur",
			CodAmount:        decimal.NewFromInt(300),
			CityID:           1,
			ZoneID:           5,
			AreaID:           9,
		})
		require.NoError(t, err)
		assert.Equal(t, "DP-123", consignment.TrackingCode)
		assert.Equal(t, PathaoName, consignment.ProviderID)
	})

	t.Run("incomplete location rejected locally", func(t *testing.T) {
		adapter := NewPathaoAdapter(pathaoSettings(t, "http://127.0.0.1:1"), zap.NewNop(), 200*time.Millisecond)
		_, err := adapter.CreateConsignment(context.Background(), courierdomain.ConsignmentRequest{
			OrderID: "1002",
			CityID:  1, // zone and area missing
		})
		require.ErrorIs(t, err, courierdomain.ErrRejected)
		assert.Contains(t, err.Error(), "incomplete delivery location")
	})

	t.Run("upstream rejection message propagates", func(t *testing.T) {
		var tokenCalls atomic.Int32
		server := pathaoMock(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message": "The recipient zone field is invalid"}`))
		})
		defer server.Close()

		adapter := NewPathaoAdapter(pathaoSettings(t, server.URL), zap.NewNop(), 2*time.Second)
		_, err := adapter.CreateConsignment(context.Background(), courierdomain.ConsignmentRequest{
			OrderID: "1002",
			CityID:  1,
			ZoneID:  5,
			AreaID:  9,
		})
		require.ErrorIs(t, err, courierdomain.ErrRejected)
		assert.Contains(t, err.Error(), "recipient zone")
	})
}

func TestPathaoAdapter_LocationHierarchy(t *testing.T) {
	var tokenCalls atomic.Int32
	server := pathaoMock(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/aladdin/api/v1/cities/1/zone-list":
			w.Write([]byte(`{"data": {"data": [{"zone_id": 5, "zone_name": "Mirpur"}]}}`))
		case "/aladdin/api/v1/zones/5/area-list":
			w.Write([]byte(`{"data": {"data": [{"area_id": 9, "area_name": "Mirpur 10"}]}}`))
		case "/aladdin/api/v1/stores":
			w.Write([]byte(`{"data": {"data": [{"store_id": 77, "store_name": "Main", "store_address": "Dhaka"}]}}`))
		default:
			http.NotFound(w, r)
		}
	})
	defer server.Close()

	adapter := NewPathaoAdapter(pathaoSettings(t, server.URL), zap.NewNop(), 2*time.Second)
	ctx := context.Background()

	zones, err := adapter.Zones(ctx, 1)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, courierdomain.Zone{ID: 5, Name: "Mirpur"}, zones[0])

	areas, err := adapter.Areas(ctx, 5)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "Mirpur 10", areas[0].Name)

	stores, err := adapter.Stores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, 77, stores[0].ID)
}
