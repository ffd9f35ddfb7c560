// Package dashboard contains the reconciliation engine: the orchestrator
// that fetches orders, products, categories and expenses from their
// independent sources, merges courier tracking reality into order status,
// maintains the customer directory and recomputes the aggregate statistics
// as one consistent snapshot.
package dashboard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shopops/backend/internal/domain/shop"
	"github.com/shopops/backend/internal/infrastructure/cache"
)

// Snapshot is the self-consistent result of one reconciliation pass. Views
// only ever see a complete snapshot, never a half-updated one.
type Snapshot struct {
	Orders     []shop.Order            `json:"orders"`
	Products   []shop.InventoryProduct `json:"products"`
	Categories []shop.Category         `json:"categories"`
	Customers  []shop.Customer         `json:"customers"`
	Expenses   []shop.Expense          `json:"expenses"`
	Stats      shop.DashboardStats     `json:"stats"`

	// Configured is false when commerce credentials are absent; the rest of
	// the snapshot (expenses, directory customers) is still meaningful.
	Configured  bool      `json:"configured"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// ReconcileService owns the published snapshot and runs reconciliation
// passes. Overlapping passes are not serialized; the later completion wins
// the snapshot swap, and correctness under overlap relies on the directory's
// idempotent upsert contract.
type ReconcileService struct {
	commerce  shop.CommerceSource
	directory shop.CustomerDirectory
	expenses  shop.ExpenseSource
	cache     cache.SnapshotCache
	logger    *zap.Logger

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewReconcileService creates the reconciliation engine.
func NewReconcileService(
	commerce shop.CommerceSource,
	directory shop.CustomerDirectory,
	expenses shop.ExpenseSource,
	snapshotCache cache.SnapshotCache,
	logger *zap.Logger,
) *ReconcileService {
	return &ReconcileService{
		commerce:  commerce,
		directory: directory,
		expenses:  expenses,
		cache:     snapshotCache,
		logger:    logger,
	}
}

// Reconcile runs one full pass: fan-out fetch, enrich, derive customers,
// upsert, re-fetch the canonical directory, recompute stats, publish. Every
// read source fails soft, so a pass always produces a snapshot; the worst
// case is a snapshot of zeros.
func (s *ReconcileService) Reconcile(ctx context.Context) (*Snapshot, error) {
	started := time.Now()
	configured := s.commerce.Configured(ctx)

	var (
		orders     = []shop.Order{}
		products   = []shop.InventoryProduct{}
		categories = []shop.Category{}
		expenses   = []shop.Expense{}
	)

	// The four fetches are independent; each source degrades to an empty
	// result on failure or panic, so a failing source never blocks the
	// others and a buggy adapter never takes down the pass.
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		s.guard("orders", func() { orders = s.fetchOrders(ctx) })
	}()
	go func() {
		defer wg.Done()
		s.guard("products", func() { products = s.fetchProducts(ctx) })
	}()
	go func() {
		defer wg.Done()
		s.guard("categories", func() { categories = s.fetchCategories(ctx) })
	}()
	go func() {
		defer wg.Done()
		s.guard("expenses", func() { expenses = s.fetchExpenses(ctx) })
	}()
	wg.Wait()

	enrichLineItems(orders, products)

	batch := shop.DeriveCustomerBatch(orders)
	s.upsertCustomers(ctx, batch)

	customers := []shop.Customer{}
	s.guard("directory", func() { customers = s.fetchCustomers(ctx) })

	snapshot := &Snapshot{
		Orders:      orders,
		Products:    products,
		Categories:  categories,
		Customers:   customers,
		Expenses:    expenses,
		Stats:       shop.ComputeStats(orders, expenses, len(products), len(customers)),
		Configured:  configured,
		RefreshedAt: time.Now(),
	}

	s.publish(ctx, snapshot)

	s.logger.Info("reconciliation pass complete",
		zap.Int("orders", len(orders)),
		zap.Int("products", len(products)),
		zap.Int("customers", len(customers)),
		zap.Int("expenses", len(expenses)),
		zap.Bool("configured", configured),
		zap.Duration("took", time.Since(started)),
	)

	return snapshot, nil
}

// Snapshot returns the latest published snapshot. Before the first in-process
// pass it falls back to the snapshot cache, and to an empty configured-false
// snapshot when the cache is cold too.
func (s *ReconcileService) Snapshot(ctx context.Context) *Snapshot {
	s.mu.RLock()
	current := s.snapshot
	s.mu.RUnlock()
	if current != nil {
		return current
	}

	if cached := s.loadCached(ctx); cached != nil {
		return cached
	}
	return &Snapshot{}
}

// AddLocalOrder merges a locally placed order into the published state and
// recomputes the statistics, without touching the commerce source.
func (s *ReconcileService) AddLocalOrder(ctx context.Context, order shop.Order) {
	s.mu.Lock()
	base := s.snapshot
	next := &Snapshot{}
	if base != nil {
		*next = *base
	}
	next.Orders = append(append([]shop.Order{}, next.Orders...), order)
	next.Stats = shop.ComputeStats(next.Orders, next.Expenses, len(next.Products), len(next.Customers))
	next.RefreshedAt = time.Now()
	s.snapshot = next
	s.mu.Unlock()

	s.storeCached(ctx, next)
}

// ---------------------------------------------------------------------------
// Pass Internals
// ---------------------------------------------------------------------------

// guard runs fn and absorbs any panic it raises, logging it as a degraded
// source. The pass keeps whatever fn did not overwrite, so a panicking
// adapter leaves its slice empty instead of killing the process.
func (s *ReconcileService) guard(source string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("source panicked, result degraded to empty",
				zap.String("source", source),
				zap.Any("panic", r),
			)
		}
	}()
	fn()
}

func (s *ReconcileService) fetchOrders(ctx context.Context) []shop.Order {
	orders, err := s.commerce.FetchOrders(ctx)
	if err != nil {
		s.logger.Warn("order fetch degraded to empty", zap.Error(err))
		return []shop.Order{}
	}
	return orders
}

func (s *ReconcileService) fetchProducts(ctx context.Context) []shop.InventoryProduct {
	products, err := s.commerce.FetchProducts(ctx)
	if err != nil {
		s.logger.Warn("product fetch degraded to empty", zap.Error(err))
		return []shop.InventoryProduct{}
	}
	return products
}

func (s *ReconcileService) fetchCategories(ctx context.Context) []shop.Category {
	categories, err := s.commerce.FetchCategories(ctx)
	if err != nil {
		s.logger.Warn("category fetch degraded to empty", zap.Error(err))
		return []shop.Category{}
	}
	return categories
}

func (s *ReconcileService) fetchExpenses(ctx context.Context) []shop.Expense {
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		s.logger.Warn("expense fetch degraded to empty", zap.Error(err))
		return []shop.Expense{}
	}
	return expenses
}

func (s *ReconcileService) fetchCustomers(ctx context.Context) []shop.Customer {
	customers, err := s.directory.List(ctx)
	if err != nil {
		s.logger.Warn("directory list degraded to empty", zap.Error(err))
		return []shop.Customer{}
	}
	return customers
}

// upsertCustomers pushes the deduplicated batch to the directory. The batch
// holds one entry per phone, so concurrent upserts never race on the same
// customer; individual failures are logged and do not stop the pass.
func (s *ReconcileService) upsertCustomers(ctx context.Context, batch []shop.CustomerUpsert) {
	var wg sync.WaitGroup
	for _, upsert := range batch {
		wg.Add(1)
		go func(u shop.CustomerUpsert) {
			defer wg.Done()
			s.guard("customer upsert", func() {
				if err := s.directory.Upsert(ctx, u); err != nil {
					s.logger.Warn("customer upsert failed",
						zap.String("phone", u.Phone),
						zap.Error(err),
					)
				}
			})
		}(upsert)
	}
	wg.Wait()
}

// enrichLineItems back-fills product images onto order line items by product
// id. Items with no matching product are left unchanged.
func enrichLineItems(orders []shop.Order, products []shop.InventoryProduct) {
	if len(orders) == 0 || len(products) == 0 {
		return
	}
	images := make(map[string]string, len(products))
	for _, product := range products {
		if product.Img != "" {
			images[product.ID] = product.Img
		}
	}
	for i := range orders {
		for j := range orders[i].Products {
			item := &orders[i].Products[j]
			if item.Img == "" {
				if img, ok := images[item.ID]; ok {
					item.Img = img
				}
			}
		}
	}
}

// publish swaps the snapshot pointer and pushes the serialized copy to the
// snapshot cache. Later completions overwrite earlier ones.
func (s *ReconcileService) publish(ctx context.Context, snapshot *Snapshot) {
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.storeCached(ctx, snapshot)
}

func (s *ReconcileService) storeCached(ctx context.Context, snapshot *Snapshot) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Warn("failed to encode snapshot for cache", zap.Error(err))
		return
	}
	if err := s.cache.Store(ctx, encoded); err != nil {
		s.logger.Warn("failed to cache snapshot", zap.Error(err))
	}
}

func (s *ReconcileService) loadCached(ctx context.Context) *Snapshot {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load cached snapshot", zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Warn("failed to decode cached snapshot", zap.Error(err))
		return nil
	}
	return &snapshot
}
