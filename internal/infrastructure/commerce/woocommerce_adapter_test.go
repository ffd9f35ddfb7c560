package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopops/backend/internal/domain/shop"
)

// fakeSettings serves a fixed commerce config.
type fakeSettings struct {
	mu     sync.Mutex
	values map[string]json.RawMessage
	gets   int
}

func (f *fakeSettings) Get(_ context.Context, key string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	return f.values[key], nil
}

func (f *fakeSettings) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values == nil {
		f.values = map[string]json.RawMessage{}
	}
	f.values[key] = raw
	return nil
}

// fakeTracking serves a fixed annotation set.
type fakeTracking struct {
	annotations []shop.TrackingAnnotation
}

func (f *fakeTracking) List(context.Context) ([]shop.TrackingAnnotation, error) {
	return f.annotations, nil
}

func (f *fakeTracking) Get(_ context.Context, orderID string) (*shop.TrackingAnnotation, error) {
	for i := range f.annotations {
		if f.annotations[i].OrderID == orderID {
			return &f.annotations[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTracking) Save(_ context.Context, annotation shop.TrackingAnnotation) {
	f.annotations = append(f.annotations, annotation)
}

func settingsWithStore(t *testing.T, storeURL string) *fakeSettings {
	t.Helper()
	settings := &fakeSettings{}
	require.NoError(t, settings.Set(context.Background(), ConfigKey, WooConfig{
		URL:            storeURL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
	}))
	return settings
}

func newTestAdapter(settings *fakeSettings, tracking shop.TrackingStore) *WooAdapter {
	return NewWooAdapter(settings, tracking, zap.NewNop(), 2*time.Second)
}

func TestWooAdapter_FetchOrders(t *testing.T) {
	orderPayload := `[
		{
			"id": 5,
			"status": "completed",
			"date_created": "2024-03-10T14:30:00",
			"total": "800.00",
			"shipping_total": "100.00",
			"discount_total": "0.00",
			"payment_method_title": "Cash on delivery",
			"billing": {
				"first_name": "Karim",
				"last_name": "Rahman",
				"address_1": "House 7, Road 2",
				"city": "Dhaka",
				"phone": "01711111111",
				"email": "karim@example.com"
			},
			"line_items": [
				{"id": 1, "product_id": 42, "name": "T-Shirt", "quantity": 2, "price": 350}
			]
		},
		{
			"id": 6,
			"status": "processing",
			"date_created": "2024-03-11T09:00:00",
			"total": "300.00",
			"shipping_total": "60.00",
			"discount_total": "10.00",
			"billing": {"first_name": "Salma", "phone": "01722222222"},
			"line_items": []
		}
	]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/orders", r.URL.Path)
		assert.Equal(t, "ck_test", r.URL.Query().Get("consumer_key"))
		assert.Equal(t, "cs_test", r.URL.Query().Get("consumer_secret"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		w.Write([]byte(orderPayload))
	}))
	defer server.Close()

	tracking := &fakeTracking{annotations: []shop.TrackingAnnotation{
		{OrderID: "5", CourierTrackingCode: "TRK-5", CourierProvider: "steadfast", CourierStatus: "in transit"},
	}}
	adapter := newTestAdapter(settingsWithStore(t, server.URL), tracking)

	orders, err := adapter.FetchOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	annotated := orders[0]
	assert.Equal(t, "5", annotated.ID)
	// Courier reality wins over the native completed -> Delivered mapping.
	assert.Equal(t, shop.StatusShipping, annotated.Status)
	assert.Equal(t, "TRK-5", annotated.CourierTrackingCode)
	assert.Equal(t, "Karim Rahman", annotated.Customer.Name)
	assert.Equal(t, "House 7, Road 2, Dhaka", annotated.Address)
	assert.True(t, annotated.Subtotal.Equal(decimal.NewFromInt(700)), "subtotal = total - shipping")
	assert.True(t, annotated.Total.Equal(decimal.NewFromInt(800)))
	require.Len(t, annotated.Products, 1)
	assert.Equal(t, "42", annotated.Products[0].ID)
	assert.True(t, annotated.Products[0].Price.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, 2, annotated.Products[0].Qty)
	assert.Equal(t, "10 Mar 2024", annotated.Date)
	assert.Equal(t, "10 Mar 2024", annotated.StatusHistory["placed"])

	unannotated := orders[1]
	assert.Equal(t, shop.StatusPackaging, unannotated.Status, "native processing maps to Packaging")
	assert.Empty(t, unannotated.CourierTrackingCode)
	assert.True(t, unannotated.Subtotal.Equal(decimal.NewFromInt(240)))
}

func TestWooAdapter_FetchOrders_Unconfigured(t *testing.T) {
	adapter := newTestAdapter(&fakeSettings{}, &fakeTracking{})

	orders, err := adapter.FetchOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.False(t, adapter.Configured(context.Background()))
}

func TestWooAdapter_FailSoft(t *testing.T) {
	t.Run("unreachable endpoint", func(t *testing.T) {
		settings := settingsWithStore(t, "http://127.0.0.1:1")
		adapter := NewWooAdapter(settings, &fakeTracking{}, zap.NewNop(), 200*time.Millisecond)
		ctx := context.Background()

		orders, err := adapter.FetchOrders(ctx)
		require.NoError(t, err)
		assert.Empty(t, orders)

		products, err := adapter.FetchProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)

		categories, err := adapter.FetchCategories(ctx)
		require.NoError(t, err)
		assert.Empty(t, categories)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		adapter := newTestAdapter(settingsWithStore(t, server.URL), &fakeTracking{})
		orders, err := adapter.FetchOrders(context.Background())
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not":"an array"}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(settingsWithStore(t, server.URL), &fakeTracking{})
		orders, err := adapter.FetchOrders(context.Background())
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestWooAdapter_FetchProducts(t *testing.T) {
	payload := `[
		{
			"id": 42,
			"name": "T-Shirt",
			"status": "publish",
			"price": "350",
			"regular_price": "500",
			"sale_price": "350",
			"stock_quantity": 12,
			"images": [{"src": "https://cdn.example.com/tshirt.jpg"}],
			"categories": [{"id": 9, "name": "Apparel", "slug": "apparel"}]
		},
		{
			"id": 43,
			"name": "Draft Item",
			"status": "draft",
			"price": "100",
			"regular_price": "100",
			"sale_price": ""
		}
	]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)
		w.Write([]byte(payload))
	}))
	defer server.Close()

	adapter := newTestAdapter(settingsWithStore(t, server.URL), &fakeTracking{})
	products, err := adapter.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	discounted := products[0]
	assert.Equal(t, "42", discounted.ID)
	assert.True(t, discounted.Status)
	assert.Equal(t, 12, discounted.Stock)
	assert.Equal(t, "Apparel", discounted.Category)
	assert.Equal(t, "https://cdn.example.com/tshirt.jpg", discounted.Img)
	assert.True(t, discounted.OriginalPrice.Equal(decimal.NewFromInt(500)))
	assert.True(t, discounted.DiscountPercent.Equal(decimal.NewFromInt(30)))

	plain := products[1]
	assert.False(t, plain.Status)
	assert.True(t, plain.DiscountPercent.IsZero())
	assert.True(t, plain.OriginalPrice.IsZero())
}

func TestWooAdapter_FetchCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products/categories", r.URL.Path)
		w.Write([]byte(`[{"id": 9, "name": "Apparel", "slug": "apparel", "count": 14}]`))
	}))
	defer server.Close()

	adapter := newTestAdapter(settingsWithStore(t, server.URL), &fakeTracking{})
	categories, err := adapter.FetchCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, shop.Category{ID: "9", Name: "Apparel", Slug: "apparel", Count: 14}, categories[0])
}

func TestWooAdapter_ConfigCaching(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	settings := settingsWithStore(t, server.URL)
	adapter := newTestAdapter(settings, &fakeTracking{})
	ctx := context.Background()

	_, err := adapter.FetchOrders(ctx)
	require.NoError(t, err)
	_, err = adapter.FetchProducts(ctx)
	require.NoError(t, err)

	settings.mu.Lock()
	gets := settings.gets
	settings.mu.Unlock()
	assert.Equal(t, 1, gets, "config loaded once and cached")

	adapter.Invalidate()
	_, err = adapter.FetchOrders(ctx)
	require.NoError(t, err)

	settings.mu.Lock()
	gets = settings.gets
	settings.mu.Unlock()
	assert.Equal(t, 2, gets, "invalidate forces a reload")
}
