package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/brunomacedo/vitrinezap-backend/internal/pricing"
	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
	"github.com/brunomacedo/vitrinezap-backend/pkg/logger"
	"github.com/brunomacedo/vitrinezap-backend/pkg/metrics"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// Engine owns the authoritative item list of one cart. Every mutation runs
// the full recomputation pass over the whole list, because wholesale-by-
// cart-total rules depend on aggregate quantity per store. A mutex
// serializes mutations so each pass reads the list as committed by the
// immediately preceding operation.
type Engine struct {
	mu        sync.Mutex
	cartID    string
	storeID   string
	state     enums.CartState
	items     []types.CartItem
	resolver  PricingResolver
	snapshots SnapshotStore
	logg      *logger.Logger
	metrics   *metrics.CartMetrics
	degraded  bool
}

// AddResult reports the outcome of an add operation. NewlyWholesale lists
// the ids of items that crossed into wholesale pricing during the pass.
type AddResult struct {
	Item           types.CartItem
	Merged         bool
	NewlyWholesale []string
}

// LoadResult reports what snapshot reconciliation found. Notice is a
// user-facing message, empty when nothing needs surfacing.
type LoadResult struct {
	Notice  string
	Dropped int
}

// TierProgress summarizes a product's position on its tier ladder.
type TierProgress struct {
	CurrentTierOrder int
	NextTierOrder    int
	QuantityNeeded   int
	PotentialSavings *decimal.Decimal
}

// Totals are the derived aggregate values of the cart, recomputed fresh on
// every call rather than stored.
type Totals struct {
	TotalAmount          decimal.Decimal
	TotalItems           int
	PotentialSavings     decimal.Decimal
	CanGetWholesalePrice bool
	TierProgress         map[string]TierProgress
}

// NewEngine builds an engine for one cart. storeID is the fallback used to
// backfill items that were persisted without one. Metrics may be nil.
func NewEngine(cartID, storeID string, resolver PricingResolver, snapshots SnapshotStore, logg *logger.Logger, m *metrics.CartMetrics) (*Engine, error) {
	if cartID == "" {
		return nil, fmt.Errorf("cart id required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("pricing resolver required")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Engine{
		cartID:    cartID,
		storeID:   storeID,
		state:     enums.CartStateLoading,
		resolver:  resolver,
		snapshots: snapshots,
		logg:      logg,
		metrics:   m,
	}, nil
}

// Load rehydrates the cart from its persisted snapshot, validates every
// entry, backfills missing store ids, runs one recomputation pass and
// transitions to ready. Calling Load on a ready engine is a no-op.
func (e *Engine) Load(ctx context.Context) (LoadResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == enums.CartStateReady {
		return LoadResult{}, nil
	}
	ctx = e.logg.WithCartID(ctx, e.cartID)

	var result LoadResult
	payload, err := e.snapshots.Read(ctx, e.cartID)
	switch {
	case err != nil:
		// persistence unavailable: degrade to in-memory for the session
		e.degraded = true
		e.items = nil
		e.logg.Warn(e.logg.WithField(ctx, "error", err.Error()), "snapshot read failed, cart degraded to in-memory")
	case len(payload) == 0:
		e.items = nil
	default:
		items, parseErr := parseSnapshot(payload)
		if parseErr != nil {
			e.logg.Warn(e.logg.WithField(ctx, "error", parseErr.Error()), "corrupt cart snapshot, clearing storage")
			if clearErr := e.snapshots.Clear(ctx, e.cartID); clearErr != nil {
				e.degraded = true
			}
			e.items = nil
			result.Notice = "Your saved cart could not be restored and was reset."
			break
		}
		kept, dropped, validationErr := reconcileEntries(items)
		if validationErr != nil {
			e.logg.Warn(e.logg.WithField(ctx, "error", validationErr.Error()), "dropped invalid cart snapshot entries")
		}
		e.items = kept
		result.Dropped = dropped
		if dropped > 1 {
			result.Notice = fmt.Sprintf("%d saved cart items were invalid and removed.", dropped)
		}
	}

	e.backfillStoreIDs()
	e.recompute(ctx)
	e.state = enums.CartStateReady
	if len(e.items) > 0 {
		e.persist(ctx)
	}
	return result, nil
}

// AddItem validates and inserts a line, merging it into an existing one
// when product id, catalog type and variation signature match. A
// wholesale_only hint forces the minimum wholesale quantity and the
// wholesale price, except for grade items whose calculator-produced price
// is preserved.
func (e *Engine) AddItem(ctx context.Context, item types.CartItem, hint enums.PriceModel) (AddResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureReady(); err != nil {
		return AddResult{}, err
	}
	if err := validateItem(item); err != nil {
		return AddResult{}, err
	}
	ctx = e.logg.WithCartID(ctx, e.cartID)

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Product.StoreID == "" {
		item.Product.StoreID = e.fallbackStoreID()
	}

	if hint == enums.PriceModelWholesaleOnly && !item.IsGrade() {
		min := minWholesaleQty(item.Product)
		if item.Quantity < min {
			item.Quantity = min
		}
		if item.Product.WholesalePrice != nil {
			item.Price = *item.Product.WholesalePrice
			item.OriginalPrice = *item.Product.WholesalePrice
			item.IsWholesalePrice = true
		}
	}

	result := AddResult{}
	key := item.MergeKey()
	merged := false
	for i := range e.items {
		if e.items[i].MergeKey() == key {
			e.items[i].Quantity += item.Quantity
			item = e.items[i]
			merged = true
			break
		}
	}
	if !merged {
		e.items = append(e.items, item)
	}
	result.Merged = merged

	before := e.wholesaleFlags()
	e.recompute(ctx)
	e.persist(ctx)
	result.NewlyWholesale = e.newlyWholesale(before)
	result.Item = e.findItem(item.ID)
	e.metrics.IncMutation("add_item")
	return result, nil
}

// RemoveItem drops a line and recomputes the remaining items.
func (e *Engine) RemoveItem(ctx context.Context, itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureReady(); err != nil {
		return err
	}
	if !e.removeLocked(ctx, itemID) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	e.metrics.IncMutation("remove_item")
	return nil
}

// UpdateQuantity sets a line's quantity, clamped to at least 1 — or to the
// wholesale minimum when the hint is wholesale_only. A quantity of zero or
// less removes the line. minQtyOverride, when set, replaces the product's
// own minimum for the clamp.
func (e *Engine) UpdateQuantity(ctx context.Context, itemID string, quantity int, hint enums.PriceModel, minQtyOverride *int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureReady(); err != nil {
		return err
	}

	if quantity <= 0 {
		if !e.removeLocked(ctx, itemID) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		e.metrics.IncMutation("update_quantity")
		return nil
	}

	idx := -1
	for i := range e.items {
		if e.items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	floor := 1
	if hint == enums.PriceModelWholesaleOnly {
		floor = minWholesaleQty(e.items[idx].Product)
		if minQtyOverride != nil && *minQtyOverride > 0 {
			floor = *minQtyOverride
		}
	}
	if quantity < floor {
		quantity = floor
	}
	e.items[idx].Quantity = quantity

	ctx = e.logg.WithCartID(ctx, e.cartID)
	e.recompute(ctx)
	e.persist(ctx)
	e.metrics.IncMutation("update_quantity")
	return nil
}

// Clear empties the cart and its persisted snapshot immediately; no
// recomputation is needed on an empty list.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	ctx = e.logg.WithCartID(ctx, e.cartID)
	if err := e.snapshots.Clear(ctx, e.cartID); err != nil {
		e.degraded = true
		e.metrics.IncSnapshotFailure()
		e.logg.Warn(e.logg.WithField(ctx, "error", err.Error()), "snapshot clear failed, cart degraded to in-memory")
	}
	e.metrics.IncMutation("clear")
	return nil
}

// Items returns a copy of the current line list.
func (e *Engine) Items() []types.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]types.CartItem, len(e.items))
	copy(items, e.items)
	return items
}

// State reports the engine lifecycle state.
func (e *Engine) State() enums.CartState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Degraded reports whether snapshot persistence has failed this session.
func (e *Engine) Degraded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.degraded
}

// Totals derives the aggregate values from the current list. For grade
// lines Price is already a per-grade total, so the line total multiplies
// grade count, not pairs.
func (e *Engine) Totals() Totals {
	e.mu.Lock()
	defer e.mu.Unlock()

	totals := Totals{
		TotalAmount:      decimal.Zero,
		PotentialSavings: decimal.Zero,
		TierProgress:     make(map[string]TierProgress),
	}
	for _, item := range e.items {
		totals.TotalAmount = totals.TotalAmount.Add(item.LineTotal())
		totals.TotalItems += item.Quantity

		saving := item.OriginalPrice.Sub(item.Price)
		if saving.Sign() > 0 {
			totals.PotentialSavings = totals.PotentialSavings.Add(saving.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		if !item.IsGrade() && !item.IsWholesalePrice &&
			(item.Product.WholesalePrice != nil || item.NextTier != nil) {
			totals.CanGetWholesalePrice = true
		}

		if item.CurrentTier != nil || item.NextTier != nil {
			progress := TierProgress{}
			if item.CurrentTier != nil {
				progress.CurrentTierOrder = item.CurrentTier.Order
			}
			if item.NextTier != nil {
				progress.NextTierOrder = item.NextTier.Order
				progress.QuantityNeeded = pricing.NextTierQuantityNeeded(item.NextTier, item.Quantity)
				progress.PotentialSavings = pricing.NextTierPotentialSavings(item.Price, item.NextTier)
			}
			totals.TierProgress[item.Product.ID] = progress
		}
	}
	return totals
}

func (e *Engine) ensureReady() error {
	if e.state != enums.CartStateReady {
		return pkgerrors.New(pkgerrors.CodeConflict, "cart is still loading")
	}
	return nil
}

func (e *Engine) removeLocked(ctx context.Context, itemID string) bool {
	for i := range e.items {
		if e.items[i].ID == itemID {
			e.items = append(e.items[:i], e.items[i+1:]...)
			ctx = e.logg.WithCartID(ctx, e.cartID)
			e.recompute(ctx)
			e.persist(ctx)
			return true
		}
	}
	return false
}

// recompute runs the central pricing pass over the entire list: resolve
// store models for the distinct store ids, aggregate unit counts per
// store, then evaluate the rule chain per item. The pass is idempotent.
func (e *Engine) recompute(ctx context.Context) {
	start := time.Now()

	models := make(map[string]*types.StorePriceModel)
	units := make(map[string]int)
	for _, item := range e.items {
		storeID := item.Product.StoreID
		if _, seen := models[storeID]; !seen {
			models[storeID] = e.resolver.FetchStoreModel(ctx, storeID)
		}
		units[storeID] += item.Quantity
	}

	for i := range e.items {
		item := &e.items[i]
		model := models[item.Product.StoreID]
		in := ruleInput{
			model:      model,
			priceModel: effectivePriceModel(model, item.Product),
			storeUnits: units[item.Product.StoreID],
		}
		if item.Product.EnableGradualWholesale && !item.IsGrade() {
			in.tiers = e.resolver.FetchTiers(ctx, item.Product.ID)
		}
		applyPricingRules(item, in)
	}

	e.metrics.ObserveRecompute(e.fallbackStoreID(), time.Since(start))
}

// persist mirrors the item list to the snapshot store. Never called while
// loading; a write failure degrades the engine to in-memory only.
func (e *Engine) persist(ctx context.Context) {
	if e.state != enums.CartStateReady {
		// never clobber not-yet-loaded state with a partial list
		return
	}
	if e.degraded {
		return
	}
	items := e.items
	if items == nil {
		items = []types.CartItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		e.logg.Error(ctx, "marshal cart snapshot", err)
		return
	}
	if err := e.snapshots.Write(ctx, e.cartID, payload); err != nil {
		e.degraded = true
		e.metrics.IncSnapshotFailure()
		e.logg.Warn(e.logg.WithField(ctx, "error", err.Error()), "snapshot write failed, cart degraded to in-memory")
	}
}

func (e *Engine) backfillStoreIDs() {
	fallback := e.fallbackStoreID()
	if fallback == "" {
		return
	}
	for i := range e.items {
		if e.items[i].Product.StoreID == "" {
			e.items[i].Product.StoreID = fallback
		}
	}
}

// fallbackStoreID prefers the first item that carries a store id, then the
// engine's configured store.
func (e *Engine) fallbackStoreID() string {
	for _, item := range e.items {
		if item.Product.StoreID != "" {
			return item.Product.StoreID
		}
	}
	return e.storeID
}

func (e *Engine) wholesaleFlags() map[string]bool {
	flags := make(map[string]bool, len(e.items))
	for _, item := range e.items {
		flags[item.ID] = item.IsWholesalePrice
	}
	return flags
}

func (e *Engine) newlyWholesale(before map[string]bool) []string {
	var ids []string
	for _, item := range e.items {
		if item.IsWholesalePrice && !before[item.ID] {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func (e *Engine) findItem(id string) types.CartItem {
	for _, item := range e.items {
		if item.ID == id {
			return item
		}
	}
	return types.CartItem{}
}

func parseSnapshot(payload []byte) ([]types.CartItem, error) {
	var items []types.CartItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("snapshot is not a cart item array: %w", err)
	}
	return items, nil
}

// reconcileEntries validates rehydrated entries, dropping invalid ones and
// aggregating their failures for the log.
func reconcileEntries(items []types.CartItem) ([]types.CartItem, int, error) {
	kept := make([]types.CartItem, 0, len(items))
	var errs error
	dropped := 0
	for _, item := range items {
		if err := validateItem(item); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("item %s: %w", item.ID, err))
			dropped++
			continue
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		kept = append(kept, item)
	}
	return kept, dropped, errs
}
