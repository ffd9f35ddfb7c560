package shop

import (
	"context"
	"errors"
)

// Order errors
var (
	ErrEmptyOrder         = errors.New("shop: order has no line items")
	ErrInvalidLineItem    = errors.New("shop: invalid line item")
	ErrInvalidConsignment = errors.New("shop: tracking code and provider are required")
	ErrConsignmentExists  = errors.New("shop: order already has a consignment")
)

// CommerceSource fetches canonical order/product/category data from the
// external commerce platform. Implementations fail soft: when unconfigured or
// on any transport failure they return an empty slice and a nil error, so
// callers must treat empty as "not configured or no data".
type CommerceSource interface {
	// Configured reports whether commerce credentials are present.
	Configured(ctx context.Context) bool

	FetchOrders(ctx context.Context) ([]Order, error)
	FetchProducts(ctx context.Context) ([]InventoryProduct, error)
	FetchCategories(ctx context.Context) ([]Category, error)

	// Invalidate drops the cached commerce configuration so the next fetch
	// reloads it from the settings store.
	Invalidate()
}

// TrackingStore persists courier tracking annotations keyed by order id.
// The latest write for an order id wins.
type TrackingStore interface {
	List(ctx context.Context) ([]TrackingAnnotation, error)

	// Get returns the annotation for an order, or nil when none exists.
	Get(ctx context.Context, orderID string) (*TrackingAnnotation, error)

	// Save upserts an annotation. Failure is logged by the implementation
	// and not surfaced to the triggering action.
	Save(ctx context.Context, annotation TrackingAnnotation)
}

// CustomerDirectory is the authoritative customer store. Upsert is
// idempotent and accumulative: the directory, not the caller, increments
// order counts and merges the latest known contact details.
type CustomerDirectory interface {
	List(ctx context.Context) ([]Customer, error)
	Upsert(ctx context.Context, upsert CustomerUpsert) error
}

// ExpenseSource lists and records business expenses.
type ExpenseSource interface {
	List(ctx context.Context) ([]Expense, error)
	Save(ctx context.Context, expense Expense) error
}
