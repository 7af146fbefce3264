/*
engine.go - Greedy allocation and movement enrichment

PURPOSE:
  The algorithmic heart. For every (store, product) pair whose forecast
  demand exceeds its stock on hand, sources the shortfall greedily:
  warehouses first, then the lowest-selling eligible retail stores, drawing
  each transfer from a shared availability pool.

ALGORITHM (per shortfall pair, processed exactly once):
  1. remaining = forecast demand - stock (strictly positive by construction)
  2. Warehouse phase: iterate the product's warehouse list (skipping the
     destination), draw min(pool, remaining) from each, stop at zero
  3. Retail phase: stores with positive ORIGINAL stock, excluding the
     destination and all warehouses, sorted ascending by that store's
     aggregated sales for the product (stable sort: slowest movers donate
     first, ties keep input order); same draw rule
  4. remaining > 0 after both phases is silent under-allocation, not an
     error; the movement set simply does not cover every shortfall

INVARIANTS:
  - The pool is initialized from original stock, only ever decremented,
    and never goes negative
  - No movement ships a store's stock twice: later draws see the
    decremented pool
  - No self-transfers
  - A destination never receives more than its original shortfall

SEE ALSO:
  - balance.go: Produces the balance set this engine consumes
  - run.go: Wires the full pipeline
*/
package consolidation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AvailabilityPool tracks remaining transferable units per (store, product)
// within a single allocation run. Monotonically non-increasing.
type AvailabilityPool map[BalanceKey]decimal.Decimal

// Allocate computes the movement sequence for the given balance set. The
// progress callback, if non-nil, is invoked once per shortfall entry,
// duplicates included, ending at (n, n); it must not (and cannot) alter
// results.
func Allocate(balances []Balance, progress ProgressFunc) []Movement {
	var (
		pool       = make(AvailabilityPool, len(balances))
		salesByKey = make(map[BalanceKey]decimal.Decimal, len(balances))
		nameByCode = make(map[string]string)
		warehouses = make(map[string][]string) // product -> warehouse stores
		stocked    = make(map[string][]string) // product -> stores with stock > 0
		shortfalls []Balance
	)

	for _, b := range balances {
		k := b.Key()
		pool[k] = b.Stock
		salesByKey[k] = b.Sales
		if _, ok := nameByCode[b.ProductCode]; !ok {
			nameByCode[b.ProductCode] = b.ProductName
		}
		if IsWarehouse(b.Store) {
			warehouses[b.ProductCode] = append(warehouses[b.ProductCode], b.Store)
		}
		if b.Stock.IsPositive() {
			stocked[b.ProductCode] = append(stocked[b.ProductCode], b.Store)
		}
		if b.ForecastDemand.GreaterThan(b.Stock) {
			shortfalls = append(shortfalls, b)
		}
	}

	var movements []Movement
	processed := make(map[BalanceKey]struct{}, len(shortfalls))

	for i, b := range shortfalls {
		k := b.Key()
		if _, done := processed[k]; done {
			if progress != nil {
				progress(i+1, len(shortfalls))
			}
			continue
		}
		processed[k] = struct{}{}

		dest := b.Store
		part := b.ProductCode
		remaining := b.Shortfall()

		draw := func(src string) {
			srcKey := BalanceKey{Store: src, ProductCode: part}
			qty := decimal.Min(pool[srcKey], remaining)
			if !qty.IsPositive() {
				return
			}
			movements = append(movements, Movement{
				ProductName: nameByCode[part],
				ProductCode: part,
				Source:      src,
				Destination: dest,
				Quantity:    qty,
			})
			pool[srcKey] = pool[srcKey].Sub(qty)
			remaining = remaining.Sub(qty)
		}

		// Warehouse phase
		for _, src := range warehouses[part] {
			if src == dest || !remaining.IsPositive() {
				continue
			}
			draw(src)
		}

		// Retail phase: slowest movers first
		if remaining.IsPositive() {
			var candidates []string
			for _, s := range stocked[part] {
				if s != dest && !IsWarehouse(s) {
					candidates = append(candidates, s)
				}
			}
			sort.SliceStable(candidates, func(x, y int) bool {
				sx := salesByKey[BalanceKey{Store: candidates[x], ProductCode: part}]
				sy := salesByKey[BalanceKey{Store: candidates[y], ProductCode: part}]
				return sx.LessThan(sy)
			})
			for _, src := range candidates {
				if !remaining.IsPositive() {
					break
				}
				draw(src)
			}
		}

		// remaining > 0 here is an unmet shortfall; deliberately silent.

		if progress != nil {
			progress(i+1, len(shortfalls))
		}
	}

	return movements
}

// EnrichMovements attaches report-only before/after context to each
// movement: the original stock and sales of both endpoints, looked up from
// the un-decremented balance set. Movements are only constructed from
// balance keys, so a lookup miss indicates internal inconsistency.
func EnrichMovements(movements []Movement, balances []Balance) ([]EnrichedMovement, error) {
	stockByKey := make(map[BalanceKey]decimal.Decimal, len(balances))
	salesByKey := make(map[BalanceKey]decimal.Decimal, len(balances))
	for _, b := range balances {
		stockByKey[b.Key()] = b.Stock
		salesByKey[b.Key()] = b.Sales
	}

	enriched := make([]EnrichedMovement, 0, len(movements))
	for _, m := range movements {
		from := BalanceKey{Store: m.Source, ProductCode: m.ProductCode}
		to := BalanceKey{Store: m.Destination, ProductCode: m.ProductCode}
		if _, ok := stockByKey[from]; !ok {
			return nil, &LookupError{Store: m.Source, ProductCode: m.ProductCode}
		}
		if _, ok := stockByKey[to]; !ok {
			return nil, &LookupError{Store: m.Destination, ProductCode: m.ProductCode}
		}
		enriched = append(enriched, EnrichedMovement{
			Movement:  m,
			FromSOH:   stockByKey[from],
			ToSOH:     stockByKey[to],
			FromSales: salesByKey[from],
			ToSales:   salesByKey[to],
		})
	}
	return enriched, nil
}
