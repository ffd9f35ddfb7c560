package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	courierdomain "github.com/shopops/backend/internal/domain/courier"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/shop"
)

// PathaoName identifies the provider on tracking annotations.
const PathaoName = "pathao"

// tokenSafetyMargin is subtracted from the token TTL so a token is refreshed
// before it actually expires mid-request.
const tokenSafetyMargin = 60 * time.Second

// Pathao delivery parameters for standard parcel orders.
const (
	pathaoDeliveryTypeNormal = 48
	pathaoItemTypeParcel     = 2
)

// PathaoAdapter implements courier.Provider for the OAuth provider. The
// access token is cached in the settings store so restarts and concurrent
// processes reuse it until expiry.
type PathaoAdapter struct {
	settings   shared.SettingsStore
	logger     *zap.Logger
	httpClient *http.Client

	// now is injectable for token expiry tests.
	now func() time.Time
}

var _ courierdomain.Provider = (*PathaoAdapter)(nil)

// NewPathaoAdapter creates a Pathao adapter backed by the settings store.
func NewPathaoAdapter(settings shared.SettingsStore, logger *zap.Logger, timeout time.Duration) *PathaoAdapter {
	return &PathaoAdapter{
		settings: settings,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// Name returns the provider identifier.
func (a *PathaoAdapter) Name() string {
	return PathaoName
}

func (a *PathaoAdapter) loadConfig(ctx context.Context) *PathaoConfig {
	var cfg PathaoConfig
	found, err := shared.LoadJSON(ctx, a.settings, PathaoConfigKey, &cfg)
	if err != nil || !found {
		return nil
	}
	return &cfg
}

// ---------------------------------------------------------------------------
// Token Handling
// ---------------------------------------------------------------------------

// getToken returns a valid access token, reusing the settings-store-cached
// one while its expiry is in the future and re-authenticating otherwise.
func (a *PathaoAdapter) getToken(ctx context.Context, cfg *PathaoConfig) (string, error) {
	var cached PathaoToken
	if found, err := shared.LoadJSON(ctx, a.settings, PathaoTokenKey, &cached); err == nil && found {
		if cached.AccessToken != "" && cached.Expiry > a.now().Unix() {
			return cached.AccessToken, nil
		}
	}

	payload := pathaoTokenRequest{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Username:     cfg.Username,
		Password:     cfg.Password,
		GrantType:    "password",
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("courier: failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		cfg.baseURL()+"/aladdin/api/v1/issue-token", bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("courier: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", courierdomain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", courierdomain.ErrAuthFailed
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: token exchange HTTP %d", courierdomain.ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", courierdomain.ErrUnavailable, err)
	}

	var token pathaoTokenResponse
	if err := json.Unmarshal(body, &token); err != nil || token.AccessToken == "" {
		return "", courierdomain.ErrAuthFailed
	}

	expiry := a.now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenSafetyMargin).Unix()
	if err := shared.SaveJSON(ctx, a.settings, PathaoTokenKey, PathaoToken{
		AccessToken: token.AccessToken,
		Expiry:      expiry,
	}); err != nil {
		// A cache write failure only costs a re-authentication next time.
		a.logger.Warn("failed to cache pathao token", zap.Error(err))
	}

	return token.AccessToken, nil
}

// ---------------------------------------------------------------------------
// Provider Contract
// ---------------------------------------------------------------------------

// Balance returns the merchant balance, or zero when unconfigured or on any
// failure.
func (a *PathaoAdapter) Balance(ctx context.Context) decimal.Decimal {
	body, err := a.doAuthorized(ctx, http.MethodGet, "/aladdin/api/v1/merchant/balance", nil)
	if err != nil {
		a.logger.Warn("pathao balance check failed", zap.Error(err))
		return decimal.Zero
	}

	var resp struct {
		Data struct {
			AvailableAmount json.Number `json:"available_amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		a.logger.Warn("pathao balance parse failed", zap.Error(err))
		return decimal.Zero
	}
	return shop.ParseDecimal(resp.Data.AvailableAmount.String())
}

// CreateConsignment creates a shipment. The request must carry a resolved
// city/zone/area selection and the pickup store id.
func (a *PathaoAdapter) CreateConsignment(ctx context.Context, req courierdomain.ConsignmentRequest) (*courierdomain.Consignment, error) {
	cfg := a.loadConfig(ctx)
	if !cfg.Complete() {
		return nil, courierdomain.ErrNotConfigured
	}

	storeID := req.StoreID
	if storeID == 0 {
		storeID = cfg.StoreID
	}

	selection := courierdomain.LocationSelection{CityID: req.CityID, ZoneID: req.ZoneID, AreaID: req.AreaID}
	if !selection.Complete() || storeID == 0 {
		return nil, fmt.Errorf("%w: incomplete delivery location", courierdomain.ErrRejected)
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	payload := pathaoOrderRequest{
		StoreID:          storeID,
		MerchantOrderID:  req.OrderID,
		RecipientName:    req.RecipientName,
		RecipientPhone:   req.RecipientPhone,
		RecipientAddress: req.RecipientAddress,
		RecipientCity:    req.CityID,
		RecipientZone:    req.ZoneID,
		RecipientArea:    req.AreaID,
		DeliveryType:     pathaoDeliveryTypeNormal,
		ItemType:         pathaoItemTypeParcel,
		ItemQuantity:     quantity,
		ItemDescription:  req.ItemDescription,
		AmountToCollect:  req.CodAmount.StringFixed(2),
	}

	body, err := a.doAuthorized(ctx, http.MethodPost, "/aladdin/api/v1/orders", payload)
	if err != nil {
		return nil, err
	}

	var resp pathaoOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: unreadable response", courierdomain.ErrRejected)
	}
	if resp.Data == nil || resp.Data.ConsignmentID == "" {
		if resp.Message != "" {
			return nil, fmt.Errorf("%w: %s", courierdomain.ErrRejected, resp.Message)
		}
		return nil, courierdomain.ErrRejected
	}

	return &courierdomain.Consignment{
		TrackingCode: resp.Data.ConsignmentID,
		ProviderID:   PathaoName,
	}, nil
}

// TrackStatus returns the provider's order status string for a consignment id.
func (a *PathaoAdapter) TrackStatus(ctx context.Context, trackingCode string) (string, error) {
	body, err := a.doAuthorized(ctx, http.MethodGet, "/aladdin/api/v1/orders/"+trackingCode+"/info", nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		Data struct {
			OrderStatus string `json:"order_status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("courier: pathao status parse failed: %w", err)
	}
	return resp.Data.OrderStatus, nil
}

// ---------------------------------------------------------------------------
// Location Hierarchy
// ---------------------------------------------------------------------------

// Cities returns the top-level delivery regions.
func (a *PathaoAdapter) Cities(ctx context.Context) ([]courierdomain.City, error) {
	raw, err := a.fetchList(ctx, "/aladdin/api/v1/city-list")
	if err != nil {
		return nil, err
	}
	var records []pathaoCity
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("courier: pathao city parse failed: %w", err)
	}
	cities := make([]courierdomain.City, len(records))
	for i, r := range records {
		cities[i] = courierdomain.City{ID: r.CityID, Name: r.CityName}
	}
	return cities, nil
}

// Zones returns the zones of a city.
func (a *PathaoAdapter) Zones(ctx context.Context, cityID int) ([]courierdomain.Zone, error) {
	raw, err := a.fetchList(ctx, fmt.Sprintf("/aladdin/api/v1/cities/%d/zone-list", cityID))
	if err != nil {
		return nil, err
	}
	var records []pathaoZone
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("courier: pathao zone parse failed: %w", err)
	}
	zones := make([]courierdomain.Zone, len(records))
	for i, r := range records {
		zones[i] = courierdomain.Zone{ID: r.ZoneID, Name: r.ZoneName}
	}
	return zones, nil
}

// Areas returns the areas of a zone.
func (a *PathaoAdapter) Areas(ctx context.Context, zoneID int) ([]courierdomain.Area, error) {
	raw, err := a.fetchList(ctx, fmt.Sprintf("/aladdin/api/v1/zones/%d/area-list", zoneID))
	if err != nil {
		return nil, err
	}
	var records []pathaoArea
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("courier: pathao area parse failed: %w", err)
	}
	areas := make([]courierdomain.Area, len(records))
	for i, r := range records {
		areas[i] = courierdomain.Area{ID: r.AreaID, Name: r.AreaName}
	}
	return areas, nil
}

// Stores returns the merchant's registered pickup stores.
func (a *PathaoAdapter) Stores(ctx context.Context) ([]courierdomain.Store, error) {
	raw, err := a.fetchList(ctx, "/aladdin/api/v1/stores")
	if err != nil {
		return nil, err
	}
	var records []pathaoStore
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("courier: pathao store parse failed: %w", err)
	}
	stores := make([]courierdomain.Store, len(records))
	for i, r := range records {
		stores[i] = courierdomain.Store{ID: r.StoreID, Name: r.StoreName, Address: r.StoreAddress}
	}
	return stores, nil
}

func (a *PathaoAdapter) fetchList(ctx context.Context, path string) (json.RawMessage, error) {
	body, err := a.doAuthorized(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var envelope pathaoListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("courier: pathao list parse failed: %w", err)
	}
	return envelope.Data.Data, nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

// doAuthorized performs one bearer-authenticated call. The token goes in the
// Authorization header rather than the query string.
func (a *PathaoAdapter) doAuthorized(ctx context.Context, method, path string, payload any) ([]byte, error) {
	cfg := a.loadConfig(ctx)
	if !cfg.Complete() {
		return nil, courierdomain.ErrNotConfigured
	}

	token, err := a.getToken(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("courier: failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, cfg.baseURL()+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("courier: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", courierdomain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", courierdomain.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, courierdomain.ErrAuthFailed
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: HTTP %d", courierdomain.ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, a.rejectionError(body, resp.StatusCode)
	}

	return body, nil
}

// rejectionError propagates the upstream message when the provider explains
// the rejection.
func (a *PathaoAdapter) rejectionError(body []byte, status int) error {
	var resp pathaoOrderResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		return fmt.Errorf("%w: %s", courierdomain.ErrRejected, resp.Message)
	}
	return fmt.Errorf("%w: HTTP %d", courierdomain.ErrRejected, status)
}
