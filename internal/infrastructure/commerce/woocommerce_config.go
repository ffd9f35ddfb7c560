package commerce

import "strings"

// ConfigKey is the settings store key holding the commerce credentials.
const ConfigKey = "woocommerce_config"

// WooConfig holds the commerce source credentials, managed at runtime through
// the settings store rather than static configuration.
type WooConfig struct {
	URL            string `json:"url"`
	ConsumerKey    string `json:"consumerKey"`
	ConsumerSecret string `json:"consumerSecret"`
}

// Complete reports whether every credential needed for a fetch is present.
func (c *WooConfig) Complete() bool {
	return c != nil && c.URL != "" && c.ConsumerKey != "" && c.ConsumerSecret != ""
}

// BaseURL returns the store URL without a trailing slash.
func (c *WooConfig) BaseURL() string {
	return strings.TrimRight(c.URL, "/")
}
