/*
Package consolidation provides the core inventory consolidation engine.

PURPOSE:
  This package contains the types and algorithms for rebalancing stock
  between stores: cleaning and aggregating raw sales and stock-on-hand
  rows into per-(store, product) balances, then computing inter-store
  transfer recommendations that cover each store's unmet forecast demand
  from warehouses first and slow-moving retail stores second.

KEY CONCEPTS IN THIS FILE (types.go):
  - Table: Tabular input with named columns, as produced by ingestion
  - SalesRecord/StockRecord: Normalized per-row facts
  - Balance: Per-(store, product) sales/stock/forecast totals
  - Movement: A single recommended transfer leg
  - Forecaster: Pluggable demand forecast (identity by default)

DESIGN PRINCIPLES:
  1. Purity: No I/O anywhere in this package; tables in, movements out
  2. Precision: Uses decimal.Decimal so summation is exact, never rounded
  3. Determinism: Identical input always yields an identical movement
     sequence, including order
  4. Fail fast: Input validation aborts before any aggregation work

USAGE:
  engine := &consolidation.Engine{}
  result, err := engine.Run(ctx, consolidation.Input{
      Sales:     salesTable,
      Stock:     stockTable,
      Whitelist: whitelistTable,
  })

SEE ALSO:
  - normalize.go: Column validation, text normalization, filtering
  - aggregate.go: Grouped reduction to per-(store, product) totals
  - balance.go: Outer-join merge and forecast derivation
  - engine.go: Greedy allocation and movement enrichment
*/
package consolidation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TABLE - Tabular input with named columns
// =============================================================================

// Table is the interchange format between the ingestion collaborator and the
// engine: a header plus string-valued rows. Extra columns are ignored; rows
// shorter than the header read as empty cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, comparing headers after
// trimming surrounding whitespace. Returns -1 if the column is absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.TrimSpace(c) == name {
			return i
		}
	}
	return -1
}

// Cell returns the value of column idx in the given row, or "" when the row
// is too short or the index is negative.
func (t Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// =============================================================================
// RECORDS - Normalized input rows
// =============================================================================

// SalesRecord is one normalized sales row. Sales are the source of truth
// for demand.
type SalesRecord struct {
	Store       string
	ProductCode string
	ProductName string
	Quantity    decimal.Decimal
}

// StockRecord is one normalized stock-on-hand row. Stock is the source of
// truth for supply.
type StockRecord struct {
	Store       string
	ProductCode string
	ProductName string
	ActualStock decimal.Decimal
}

// Whitelist is the set of valid product codes, normalized (trimmed,
// upper-cased). An empty whitelist means "no filtering".
type Whitelist map[string]struct{}

func (w Whitelist) Contains(code string) bool {
	_, ok := w[code]
	return ok
}

func (w Whitelist) Empty() bool { return len(w) == 0 }

// FilterCriteria narrows the input to selected brands and store brands.
// It is an immutable value passed once into normalization; zero value
// means "include everything".
type FilterCriteria struct {
	// Brands matches the sales table's BrandName column and the stock
	// table's Brand column exactly. Empty slice disables the filter.
	Brands []string

	// StoreBrands matches store names by case-insensitive substring.
	// Empty slice disables the filter.
	StoreBrands []string
}

// =============================================================================
// BALANCE - Merged per-(store, product) totals
// =============================================================================

// BalanceKey identifies one (store, product) pair. Exactly one Balance
// exists per key that appears in either aggregated table.
type BalanceKey struct {
	Store       string
	ProductCode string
}

// Balance is the merged sales/stock position of one store for one product.
// A side absent from its input aggregates to zero, never to a null.
type Balance struct {
	Store       string
	ProductCode string
	ProductName string

	Sales decimal.Decimal
	Stock decimal.Decimal

	// ForecastDemand is derived by the configured Forecaster. The default
	// forecast is the aggregated sales themselves.
	ForecastDemand decimal.Decimal
}

// Key returns the (store, product) identity of this balance.
func (b Balance) Key() BalanceKey {
	return BalanceKey{Store: b.Store, ProductCode: b.ProductCode}
}

// Shortfall returns forecast demand minus stock on hand; positive means the
// store cannot cover its expected demand from its own shelf.
func (b Balance) Shortfall() decimal.Decimal {
	return b.ForecastDemand.Sub(b.Stock)
}

// =============================================================================
// MOVEMENT - One recommended transfer leg
// =============================================================================

// Movement is a single source→destination transfer of one product.
// Invariants: Source != Destination, Quantity > 0, and Quantity never
// exceeds the source's remaining availability at emission time.
type Movement struct {
	ProductName string
	ProductCode string
	Source      string
	Destination string
	Quantity    decimal.Decimal
}

// EnrichedMovement attaches report-only context to a Movement: the ORIGINAL
// (un-decremented) stock and sales of both ends. These are informational
// snapshots, not allocation inputs.
type EnrichedMovement struct {
	Movement

	FromSOH   decimal.Decimal
	ToSOH     decimal.Decimal
	FromSales decimal.Decimal
	ToSales   decimal.Decimal
}

// =============================================================================
// WAREHOUSE PREDICATE
// =============================================================================

// IsWarehouse reports whether a store name identifies a warehouse location.
// The case-insensitive substring match is a real business rule carried over
// from the operational naming convention, not an implementation shortcut.
func IsWarehouse(storeName string) bool {
	return strings.Contains(strings.ToLower(storeName), "warehouse")
}

// =============================================================================
// FORECASTER - Pluggable demand forecast
// =============================================================================

// Forecaster derives the forecast demand for one balance. The engine never
// assumes forecast == sales; swapping in a smoothed or lead-time-buffered
// model changes allocation without touching the algorithm.
type Forecaster interface {
	Forecast(b Balance) decimal.Decimal
}

// SalesForecaster is the default forecast: demand equals the aggregated
// historical sales, with no smoothing or buffer.
type SalesForecaster struct{}

func (SalesForecaster) Forecast(b Balance) decimal.Decimal { return b.Sales }

// ProgressFunc observes allocation progress over the shortfall set. It is
// purely cosmetic: results are identical whether or not progress is observed.
type ProgressFunc func(done, total int)

// =============================================================================
// NUMERIC COERCION
// =============================================================================

// ParseQuantity converts a cell to a decimal quantity. Values that fail to
// parse coerce to zero rather than propagating an error; a bad cell costs
// its own contribution and nothing else.
func ParseQuantity(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
