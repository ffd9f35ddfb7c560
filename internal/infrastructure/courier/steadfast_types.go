package courier

import "encoding/json"

// SteadfastConfigKey is the settings store key holding the Steadfast
// credentials.
const SteadfastConfigKey = "steadfast_config"

// steadfastDefaultBaseURL is the production API endpoint.
const steadfastDefaultBaseURL = "https://portal.packzy.com/api/v1"

// SteadfastConfig holds the static API credentials for the simple-auth
// provider. BaseURL is overridable for testing against a mock endpoint.
type SteadfastConfig struct {
	APIKey    string `json:"api_key"`
	SecretKey string `json:"secret_key"`
	BaseURL   string `json:"base_url,omitempty"`
}

// Complete reports whether the credentials needed for any call are present.
func (c *SteadfastConfig) Complete() bool {
	return c != nil && c.APIKey != "" && c.SecretKey != ""
}

func (c *SteadfastConfig) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return steadfastDefaultBaseURL
}

type steadfastCreateRequest struct {
	Invoice          string `json:"invoice"`
	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone"`
	RecipientAddress string `json:"recipient_address"`
	CodAmount        string `json:"cod_amount"`
	Note             string `json:"note,omitempty"`
}

type steadfastConsignment struct {
	ConsignmentID json.Number `json:"consignment_id"`
	Invoice       string      `json:"invoice"`
	TrackingCode  string      `json:"tracking_code"`
	Status        string      `json:"status"`
}

type steadfastCreateResponse struct {
	Status      int                   `json:"status"`
	Message     string                `json:"message"`
	Consignment *steadfastConsignment `json:"consignment"`
}

type steadfastBalanceResponse struct {
	Status         int         `json:"status"`
	CurrentBalance json.Number `json:"current_balance"`
}

type steadfastStatusResponse struct {
	Status         int    `json:"status"`
	DeliveryStatus string `json:"delivery_status"`
}
