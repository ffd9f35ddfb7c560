package courier

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Courier errors. Callers distinguish missing credentials (send the user to
// settings) from an upstream rejection (fix the form) and from an
// authentication failure (credentials present but invalid).
var (
	ErrNotConfigured = errors.New("courier: provider not configured")
	ErrAuthFailed    = errors.New("courier: provider authentication failed")
	ErrRejected      = errors.New("courier: order creation rejected")
	ErrUnavailable   = errors.New("courier: provider temporarily unavailable")
	ErrUnknown       = errors.New("courier: unknown provider")
)

// ConsignmentRequest carries what a provider needs to create a shipment.
// Location ids are only used by providers with a location hierarchy.
type ConsignmentRequest struct {
	OrderID          string
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	CodAmount        decimal.Decimal
	ItemDescription  string
	Quantity         int

	// Location hierarchy selection (OAuth provider only).
	CityID  int
	ZoneID  int
	AreaID  int
	StoreID int
}

// Consignment is a provider's record of a created shipment.
type Consignment struct {
	TrackingCode string `json:"trackingCode"`
	ProviderID   string `json:"providerId"`
}

// Provider is the contract surface both courier integrations share.
type Provider interface {
	// Name returns the provider identifier stored on tracking annotations.
	Name() string

	// Balance returns the account balance, or zero when unconfigured or on
	// any transport failure.
	Balance(ctx context.Context) decimal.Decimal

	// CreateConsignment creates a shipment for an order.
	CreateConsignment(ctx context.Context, req ConsignmentRequest) (*Consignment, error)

	// TrackStatus returns the provider's delivery status string for a
	// tracking code.
	TrackStatus(ctx context.Context, trackingCode string) (string, error)
}

// Registry resolves a provider adapter by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry from the given providers.
func NewRegistry(providers ...Provider) *Registry {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrUnknown
	}
	return p, nil
}

// All returns every registered provider.
func (r *Registry) All() []Provider {
	out := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, p)
	}
	return out
}
