/*
aggregate.go - Grouped reduction to per-(store, product) totals

PURPOSE:
  Second stage of the pipeline. Collapses the normalized record sequences
  into one total per (store, product) pair, in a single reduction pass,
  and builds the product-code → product-name lookup.

ORDERING:
  Aggregates remember first-occurrence key order. Iteration order is not
  semantically meaningful, but it must be stable for a given input so
  repeated runs produce byte-identical movement sequences.

SEE ALSO:
  - balance.go: Outer-joins the two aggregates into the balance set
*/
package consolidation

import "github.com/shopspring/decimal"

// Aggregate maps (store, product) keys to summed quantities, preserving
// first-occurrence key order.
type Aggregate struct {
	totals map[BalanceKey]decimal.Decimal
	order  []BalanceKey
}

func newAggregate() *Aggregate {
	return &Aggregate{totals: make(map[BalanceKey]decimal.Decimal)}
}

func (a *Aggregate) add(k BalanceKey, v decimal.Decimal) {
	if cur, ok := a.totals[k]; ok {
		a.totals[k] = cur.Add(v)
		return
	}
	a.totals[k] = v
	a.order = append(a.order, k)
}

// Total returns the summed quantity for a key, zero if absent.
func (a *Aggregate) Total(k BalanceKey) decimal.Decimal {
	return a.totals[k]
}

// Has reports whether the key appeared in the input.
func (a *Aggregate) Has(k BalanceKey) bool {
	_, ok := a.totals[k]
	return ok
}

// Keys returns all keys in first-occurrence order. The returned slice is
// owned by the aggregate; callers must not mutate it.
func (a *Aggregate) Keys() []BalanceKey { return a.order }

// Len returns the number of distinct (store, product) pairs.
func (a *Aggregate) Len() int { return len(a.order) }

// AggregateSales reduces sales records to summed quantities per
// (store, product). Summation is exact decimal addition.
func AggregateSales(records []SalesRecord) *Aggregate {
	a := newAggregate()
	for _, r := range records {
		a.add(BalanceKey{Store: r.Store, ProductCode: r.ProductCode}, r.Quantity)
	}
	return a
}

// AggregateStock reduces stock records to summed stock on hand per
// (store, product).
func AggregateStock(records []StockRecord) *Aggregate {
	a := newAggregate()
	for _, r := range records {
		a.add(BalanceKey{Store: r.Store, ProductCode: r.ProductCode}, r.ActualStock)
	}
	return a
}

// NameLookup maps product codes to display names.
type NameLookup map[string]string

// BuildNameLookup builds the code → name lookup by taking the first
// encountered name per code. Sales rows take precedence over stock rows
// when both define a name for the same code.
func BuildNameLookup(sales []SalesRecord, stock []StockRecord) NameLookup {
	names := make(NameLookup)
	for _, r := range sales {
		if _, ok := names[r.ProductCode]; !ok {
			names[r.ProductCode] = r.ProductName
		}
	}
	for _, r := range stock {
		if _, ok := names[r.ProductCode]; !ok {
			names[r.ProductCode] = r.ProductName
		}
	}
	return names
}
