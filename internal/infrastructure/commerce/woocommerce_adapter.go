// Package commerce provides the WooCommerce source adapter: it fetches raw
// orders, products and categories from the store's REST API and normalizes
// them into the canonical shop types. Every read fails soft: unconfigured
// credentials or any transport failure yield an empty slice and a nil error.
package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/shop"
)

// decimalHundred converts a price ratio into a percentage.
var decimalHundred = decimal.NewFromInt(100)

// maxResponseSize is the maximum allowed response size from the store API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// perPage caps every listing call at 100 records. No further pagination is
// implemented; stores beyond that scale need a different sync strategy.
const perPage = 100

// wooDateLayout is the timezone-less timestamp format used by the store API.
const wooDateLayout = "2006-01-02T15:04:05"

// WooAdapter implements shop.CommerceSource against a WooCommerce store.
//
// The credentials are loaded from the settings store on first use and cached
// until Invalidate is called, so a settings change takes effect on the next
// fetch after invalidation.
type WooAdapter struct {
	settings   shared.SettingsStore
	tracking   shop.TrackingStore
	logger     *zap.Logger
	httpClient *http.Client

	mu     sync.RWMutex
	config *WooConfig
	loaded bool
}

var _ shop.CommerceSource = (*WooAdapter)(nil)

// NewWooAdapter creates a WooCommerce adapter backed by the given settings
// store and tracking store.
func NewWooAdapter(settings shared.SettingsStore, tracking shop.TrackingStore, logger *zap.Logger, timeout time.Duration) *WooAdapter {
	return &WooAdapter{
		settings: settings,
		tracking: tracking,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether complete commerce credentials are present.
func (a *WooAdapter) Configured(ctx context.Context) bool {
	cfg := a.loadConfig(ctx)
	return cfg.Complete()
}

// Invalidate drops the cached credentials so the next fetch reloads them from
// the settings store.
func (a *WooAdapter) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.config = nil
	a.loaded = false
}

// loadConfig returns the cached credentials, loading them on first use.
// A missing or unreadable settings entry caches an incomplete config; the
// resulting fetches fail soft to empty.
func (a *WooAdapter) loadConfig(ctx context.Context) *WooConfig {
	a.mu.RLock()
	if a.loaded {
		cfg := a.config
		a.mu.RUnlock()
		return cfg
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loaded {
		return a.config
	}

	var cfg WooConfig
	found, err := shared.LoadJSON(ctx, a.settings, ConfigKey, &cfg)
	if err != nil {
		a.logger.Warn("failed to load commerce config", zap.Error(err))
		// Not cached: a transient settings store failure should not pin the
		// adapter into an unconfigured state.
		return &WooConfig{}
	}
	if !found {
		a.logger.Debug("commerce config absent", zap.String("key", ConfigKey))
	}

	a.config = &cfg
	a.loaded = true
	return a.config
}

// ---------------------------------------------------------------------------
// Fetch Operations
// ---------------------------------------------------------------------------

// FetchOrders fetches all orders, joins the local tracking annotations by
// order id and derives the unified status. Courier reality wins over the
// store's native status once an annotation with a courier status exists.
func (a *WooAdapter) FetchOrders(ctx context.Context) ([]shop.Order, error) {
	cfg := a.loadConfig(ctx)
	if !cfg.Complete() {
		return []shop.Order{}, nil
	}

	body, err := a.doFetch(ctx, cfg, "/wp-json/wc/v3/orders")
	if err != nil {
		a.logger.Warn("order fetch failed", zap.Error(err))
		return []shop.Order{}, nil
	}

	var raw []wooOrder
	if err := json.Unmarshal(body, &raw); err != nil {
		a.logger.Warn("order response parse failed", zap.Error(err))
		return []shop.Order{}, nil
	}

	annotations := a.trackingIndex(ctx)

	orders := make([]shop.Order, 0, len(raw))
	for _, record := range raw {
		orders = append(orders, mapOrder(record, annotations))
	}
	return orders, nil
}

// FetchProducts fetches the product catalog.
func (a *WooAdapter) FetchProducts(ctx context.Context) ([]shop.InventoryProduct, error) {
	cfg := a.loadConfig(ctx)
	if !cfg.Complete() {
		return []shop.InventoryProduct{}, nil
	}

	body, err := a.doFetch(ctx, cfg, "/wp-json/wc/v3/products")
	if err != nil {
		a.logger.Warn("product fetch failed", zap.Error(err))
		return []shop.InventoryProduct{}, nil
	}

	var raw []wooProduct
	if err := json.Unmarshal(body, &raw); err != nil {
		a.logger.Warn("product response parse failed", zap.Error(err))
		return []shop.InventoryProduct{}, nil
	}

	products := make([]shop.InventoryProduct, 0, len(raw))
	for _, record := range raw {
		products = append(products, mapProduct(record))
	}
	return products, nil
}

// FetchCategories fetches the product category list.
func (a *WooAdapter) FetchCategories(ctx context.Context) ([]shop.Category, error) {
	cfg := a.loadConfig(ctx)
	if !cfg.Complete() {
		return []shop.Category{}, nil
	}

	body, err := a.doFetch(ctx, cfg, "/wp-json/wc/v3/products/categories")
	if err != nil {
		a.logger.Warn("category fetch failed", zap.Error(err))
		return []shop.Category{}, nil
	}

	var raw []wooCategory
	if err := json.Unmarshal(body, &raw); err != nil {
		a.logger.Warn("category response parse failed", zap.Error(err))
		return []shop.Category{}, nil
	}

	categories := make([]shop.Category, 0, len(raw))
	for _, record := range raw {
		categories = append(categories, shop.Category{
			ID:    strconv.FormatInt(record.ID, 10),
			Name:  record.Name,
			Slug:  record.Slug,
			Count: record.Count,
		})
	}
	return categories, nil
}

// trackingIndex loads all tracking annotations keyed by order id. A tracking
// store failure degrades to an empty index; orders then fall back to their
// native status.
func (a *WooAdapter) trackingIndex(ctx context.Context) map[string]shop.TrackingAnnotation {
	annotations, err := a.tracking.List(ctx)
	if err != nil {
		a.logger.Warn("tracking list failed, orders keep native status", zap.Error(err))
		return map[string]shop.TrackingAnnotation{}
	}
	index := make(map[string]shop.TrackingAnnotation, len(annotations))
	for _, annotation := range annotations {
		index[annotation.OrderID] = annotation
	}
	return index
}

// doFetch performs an authenticated GET against the store API.
func (a *WooAdapter) doFetch(ctx context.Context, cfg *WooConfig, path string) ([]byte, error) {
	query := url.Values{}
	query.Set("consumer_key", cfg.ConsumerKey)
	query.Set("consumer_secret", cfg.ConsumerSecret)
	query.Set("per_page", strconv.Itoa(perPage))

	endpoint := fmt.Sprintf("%s%s?%s", cfg.BaseURL(), path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("commerce: failed to create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("commerce: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("commerce: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("commerce: HTTP %d from %s", resp.StatusCode, path)
	}

	return body, nil
}

// ---------------------------------------------------------------------------
// Normalization
// ---------------------------------------------------------------------------

// mapOrder normalizes one raw store order. Subtotal is total minus shipping
// because the store API does not separate those directly.
func mapOrder(record wooOrder, annotations map[string]shop.TrackingAnnotation) shop.Order {
	id := strconv.FormatInt(record.ID, 10)

	total := shop.ParseDecimal(record.Total)
	shipping := shop.ParseDecimal(record.ShippingTotal)

	order := shop.Order{
		ID:             id,
		Customer:       mapCustomer(record.Billing),
		Address:        mapAddress(record.Billing),
		Products:       mapLineItems(record.LineItems),
		Subtotal:       total.Sub(shipping),
		ShippingCharge: shipping,
		Discount:       shop.ParseDecimal(record.DiscountTotal),
		Total:          total,
		PaymentMethod:  record.PaymentMethodTitle,
		StatusHistory:  map[string]string{},
	}

	if created, err := time.Parse(wooDateLayout, record.DateCreated); err == nil {
		order.Timestamp = created.UnixMilli()
		order.Date = created.Format(shop.DateLayout)
		order.StatusHistory["placed"] = order.Date
	}

	courierStatus := ""
	if annotation, ok := annotations[id]; ok {
		order.CourierTrackingCode = annotation.CourierTrackingCode
		order.CourierProvider = annotation.CourierProvider
		order.CourierStatus = annotation.CourierStatus
		courierStatus = annotation.CourierStatus
	}
	order.Status = shop.DeriveStatus(record.Status, courierStatus)

	return order
}

func mapCustomer(billing wooBilling) shop.CustomerSnapshot {
	name := billing.FirstName
	if billing.LastName != "" {
		if name != "" {
			name += " "
		}
		name += billing.LastName
	}
	return shop.CustomerSnapshot{
		Name:  name,
		Phone: billing.Phone,
		Email: billing.Email,
	}
}

func mapAddress(billing wooBilling) string {
	if billing.Address1 != "" && billing.City != "" {
		return billing.Address1 + ", " + billing.City
	}
	if billing.Address1 != "" {
		return billing.Address1
	}
	return billing.City
}

func mapLineItems(items []wooLineItem) []shop.LineItem {
	lineItems := make([]shop.LineItem, 0, len(items))
	for _, item := range items {
		lineItem := shop.LineItem{
			ID:    strconv.FormatInt(item.ProductID, 10),
			Name:  item.Name,
			Price: shop.ParseDecimal(item.Price.String()),
			Qty:   item.Quantity,
		}
		if item.Image != nil {
			lineItem.Img = item.Image.Src
		}
		lineItems = append(lineItems, lineItem)
	}
	return lineItems
}

// mapProduct normalizes one raw store product. The discount percent is
// derived from the regular versus sale price when both are present.
func mapProduct(record wooProduct) shop.InventoryProduct {
	price := shop.ParseDecimal(record.Price)
	regular := shop.ParseDecimal(record.RegularPrice)
	sale := shop.ParseDecimal(record.SalePrice)

	product := shop.InventoryProduct{
		ID:     strconv.FormatInt(record.ID, 10),
		Name:   record.Name,
		Price:  price,
		Status: record.Status == "publish",
	}

	if record.StockQuantity != nil {
		product.Stock = *record.StockQuantity
	}
	if len(record.Images) > 0 {
		product.Img = record.Images[0].Src
	}
	if len(record.Categories) > 0 {
		product.Category = record.Categories[0].Name
	}

	if sale.IsPositive() && regular.GreaterThan(sale) {
		product.OriginalPrice = regular
		product.DiscountPercent = regular.Sub(sale).
			Div(regular).
			Mul(decimalHundred).
			Round(0)
	}

	return product
}
