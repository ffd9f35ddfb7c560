package courier

import "encoding/json"

// Settings store keys for the OAuth provider.
const (
	// PathaoConfigKey holds the merchant credentials.
	PathaoConfigKey = "pathao_config"
	// PathaoTokenKey holds the cached access token with its expiry.
	PathaoTokenKey = "pathao_token"
)

// pathaoDefaultBaseURL is the production API endpoint.
const pathaoDefaultBaseURL = "https://api-hermes.pathao.com"

// PathaoConfig holds the OAuth merchant credentials. BaseURL is overridable
// for testing against a mock endpoint.
type PathaoConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	StoreID      int    `json:"store_id"`
	BaseURL      string `json:"base_url,omitempty"`
}

// Complete reports whether the credentials needed for a token exchange are
// present.
func (c *PathaoConfig) Complete() bool {
	return c != nil && c.ClientID != "" && c.ClientSecret != "" &&
		c.Username != "" && c.Password != ""
}

func (c *PathaoConfig) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return pathaoDefaultBaseURL
}

// PathaoToken is the cached access token persisted in the settings store.
// Expiry is a unix timestamp already reduced by the safety margin.
type PathaoToken struct {
	AccessToken string `json:"access_token"`
	Expiry      int64  `json:"expiry"`
}

type pathaoTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	GrantType    string `json:"grant_type"`
}

type pathaoTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type pathaoCity struct {
	CityID   int    `json:"city_id"`
	CityName string `json:"city_name"`
}

type pathaoZone struct {
	ZoneID   int    `json:"zone_id"`
	ZoneName string `json:"zone_name"`
}

type pathaoArea struct {
	AreaID   int    `json:"area_id"`
	AreaName string `json:"area_name"`
}

type pathaoStore struct {
	StoreID      int    `json:"store_id"`
	StoreName    string `json:"store_name"`
	StoreAddress string `json:"store_address"`
}

// pathaoListEnvelope matches the provider's doubly nested list responses:
// {"data": {"data": [...]}}.
type pathaoListEnvelope struct {
	Data struct {
		Data json.RawMessage `json:"data"`
	} `json:"data"`
}

type pathaoOrderRequest struct {
	StoreID          int    `json:"store_id"`
	MerchantOrderID  string `json:"merchant_order_id"`
	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone"`
	RecipientAddress string `json:"recipient_address"`
	RecipientCity    int    `json:"recipient_city"`
	RecipientZone    int    `json:"recipient_zone"`
	RecipientArea    int    `json:"recipient_area"`
	DeliveryType     int    `json:"delivery_type"`
	ItemType         int    `json:"item_type"`
	ItemQuantity     int    `json:"item_quantity"`
	ItemDescription  string `json:"item_description,omitempty"`
	AmountToCollect  string `json:"amount_to_collect"`
}

type pathaoOrderResponse struct {
	Message string `json:"message"`
	Data    *struct {
		ConsignmentID   string `json:"consignment_id"`
		MerchantOrderID string `json:"merchant_order_id"`
		OrderStatus     string `json:"order_status"`
	} `json:"data"`
	Errors map[string][]string `json:"errors,omitempty"`
}
