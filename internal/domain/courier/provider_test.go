package courier

import (
	"context"

	"github.com/shopspring/decimal"
)

// fakeProvider is a minimal Provider used by registry tests.
type fakeProvider struct {
	name string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Balance(context.Context) decimal.Decimal { return decimal.Zero }

func (f *fakeProvider) CreateConsignment(context.Context, ConsignmentRequest) (*Consignment, error) {
	return &Consignment{TrackingCode: "TRK", ProviderID: f.name}, nil
}

func (f *fakeProvider) TrackStatus(context.Context, string) (string, error) {
	return "pending", nil
}

var _ Provider = (*fakeProvider)(nil)
