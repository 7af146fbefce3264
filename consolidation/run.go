/*
run.go - Full pipeline orchestration

PURPOSE:
  Ties the five stages together: normalize → aggregate → merge → allocate
  → enrich. One call processes one fully-loaded input set to completion.
  All state (availability pool, movement list) is created fresh per run
  and discarded with the result; nothing persists across runs.

CANCELLATION:
  The context is checked between stages only. A run either fails fast on
  validation before any allocation work, or completes and returns the full
  movement sequence; there is no partial-success mode.

SEE ALSO:
  - normalize.go through engine.go: The individual stages
*/
package consolidation

import "context"

// Engine runs consolidation analyses. The zero value is ready to use:
// identity forecast, no progress observer.
type Engine struct {
	// Forecaster derives forecast demand per balance; nil means
	// SalesForecaster (forecast == aggregated sales).
	Forecaster Forecaster

	// Progress, if set, observes allocation progress. Cosmetic only.
	Progress ProgressFunc
}

// Input is one analysis request: the three raw tables plus the filter
// criteria selected by the caller.
type Input struct {
	Sales     Table
	Stock     Table
	Whitelist Table
	Filter    FilterCriteria
}

// Result is the complete output of one run.
type Result struct {
	Balances  []Balance
	Movements []EnrichedMovement
	Warnings  []string
}

// Run executes the full pipeline on one input set.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	normalized, err := Normalize(in.Sales, in.Stock, in.Whitelist, in.Filter)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	salesAgg := AggregateSales(normalized.Sales)
	stockAgg := AggregateStock(normalized.Stock)
	names := BuildNameLookup(normalized.Sales, normalized.Stock)

	balances := MergeBalances(salesAgg, stockAgg, names, e.Forecaster)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	movements := Allocate(balances, e.Progress)
	enriched, err := EnrichMovements(movements, balances)
	if err != nil {
		return nil, err
	}

	return &Result{
		Balances:  balances,
		Movements: enriched,
		Warnings:  normalized.Warnings,
	}, nil
}
