/*
balance.go - Outer-join merge and forecast derivation

PURPOSE:
  Third stage of the pipeline. Produces the balance set: every
  (store, product) pair appearing in either aggregate gets exactly one
  Balance, with the absent side's total set to zero, the product name
  attached, and the forecast demand derived by the configured Forecaster.

FORECASTING:
  The default Forecaster is the identity on aggregated sales; the system
  currently has no independent demand model. The indirection exists so
  the allocation engine never hardcodes forecast == sales.

ORDERING:
  Balances are emitted in sales-aggregate key order, followed by
  stock-only keys in stock-aggregate order. Stable for a given input.

SEE ALSO:
  - aggregate.go: Produces the two input aggregates
  - engine.go: Consumes the balance set
*/
package consolidation

// MergeBalances outer-joins the sales and stock aggregates into the balance
// set and derives forecast demand. A nil forecaster defaults to
// SalesForecaster.
func MergeBalances(sales, stock *Aggregate, names NameLookup, f Forecaster) []Balance {
	if f == nil {
		f = SalesForecaster{}
	}

	balances := make([]Balance, 0, sales.Len()+stock.Len())

	emit := func(k BalanceKey) {
		b := Balance{
			Store:       k.Store,
			ProductCode: k.ProductCode,
			ProductName: names[k.ProductCode],
			Sales:       sales.Total(k),
			Stock:       stock.Total(k),
		}
		b.ForecastDemand = f.Forecast(b)
		balances = append(balances, b)
	}

	for _, k := range sales.Keys() {
		emit(k)
	}
	for _, k := range stock.Keys() {
		if !sales.Has(k) {
			emit(k)
		}
	}
	return balances
}
