package consolidation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/consolidation-engine/consolidation"
)

// doubler is a non-identity forecast used to prove the engine does not
// hardcode forecast == sales.
type doubler struct{}

func (doubler) Forecast(b consolidation.Balance) decimal.Decimal {
	return b.Sales.Mul(decimal.NewFromInt(2))
}

func mergeFixture(f consolidation.Forecaster) []consolidation.Balance {
	sales := consolidation.AggregateSales([]consolidation.SalesRecord{
		sr("Store A", "P1", "WIDGET", 10),
		sr("Store B", "P1", "WIDGET", 2),
	})
	stock := consolidation.AggregateStock([]consolidation.StockRecord{
		{Store: "Store B", ProductCode: "P1", ProductName: "WIDGET", ActualStock: d(5)},
		{Store: "Store C", ProductCode: "P1", ProductName: "WIDGET", ActualStock: d(3)},
	})
	names := consolidation.NameLookup{"P1": "WIDGET"}
	return consolidation.MergeBalances(sales, stock, names, f)
}

func TestMergeBalances_OuterJoinFillsAbsentSidesWithZero(t *testing.T) {
	// GIVEN: Store A only in sales, Store C only in stock, Store B in both
	// WHEN: Merging
	// THEN: One balance per pair from either side, absent sides zero

	balances := mergeFixture(nil)

	if len(balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(balances))
	}

	byKey := make(map[consolidation.BalanceKey]consolidation.Balance)
	for _, b := range balances {
		if _, dup := byKey[b.Key()]; dup {
			t.Fatalf("duplicate balance for %v", b.Key())
		}
		byKey[b.Key()] = b
	}

	a := byKey[kr("Store A", "P1")]
	if !a.Sales.Equal(d(10)) || !a.Stock.IsZero() {
		t.Errorf("Store A: expected sales 10 / stock 0, got %v / %v", a.Sales, a.Stock)
	}
	c := byKey[kr("Store C", "P1")]
	if !c.Sales.IsZero() || !c.Stock.Equal(d(3)) {
		t.Errorf("Store C: expected sales 0 / stock 3, got %v / %v", c.Sales, c.Stock)
	}
	if a.ProductName != "WIDGET" {
		t.Errorf("balance should carry the product name, got %q", a.ProductName)
	}
}

func TestMergeBalances_DefaultForecastEqualsSales(t *testing.T) {
	for _, b := range mergeFixture(nil) {
		if !b.ForecastDemand.Equal(b.Sales) {
			t.Errorf("%s: default forecast should equal sales, got %v vs %v",
				b.Store, b.ForecastDemand, b.Sales)
		}
	}
}

func TestMergeBalances_ForecasterIsPluggable(t *testing.T) {
	for _, b := range mergeFixture(doubler{}) {
		if !b.ForecastDemand.Equal(b.Sales.Mul(decimal.NewFromInt(2))) {
			t.Errorf("%s: custom forecaster not applied, got %v for sales %v",
				b.Store, b.ForecastDemand, b.Sales)
		}
	}
}

func TestMergeBalances_OrderIsSalesThenStockOnly(t *testing.T) {
	// Output order: sales-aggregate key order, then stock-only keys.

	balances := mergeFixture(nil)

	wantStores := []string{"Store A", "Store B", "Store C"}
	for i, b := range balances {
		if b.Store != wantStores[i] {
			t.Errorf("position %d: expected %s, got %s", i, wantStores[i], b.Store)
		}
	}
}

func TestBalance_Shortfall(t *testing.T) {
	b := bal("Store A", "P1", 10, 3)
	if !b.Shortfall().Equal(d(7)) {
		t.Errorf("expected shortfall 7, got %v", b.Shortfall())
	}
}

func TestIsWarehouse_CaseInsensitiveSubstring(t *testing.T) {
	cases := map[string]bool{
		"Main Warehouse":     true,
		"WAREHOUSE North":    true,
		"warehouse":          true,
		"Bose Mall":          false,
		"Ware House Central": false,
	}
	for name, want := range cases {
		if got := consolidation.IsWarehouse(name); got != want {
			t.Errorf("IsWarehouse(%q) = %v, want %v", name, got, want)
		}
	}
}
