/*
errors.go - Centralized error types for the consolidation engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (API, CLI) classify errors with the helpers at the bottom.

ERROR CATEGORIES:
  1. Validation errors - Bad or incomplete input tables; fatal, detected
     before any aggregation so a run never produces partial output
  2. Consistency errors - Internal assertions that should be unreachable

WARNINGS:
  Non-fatal conditions (an unusable whitelist, an empty filter selection)
  are NOT errors. They are returned as warning strings on the run result
  and the run proceeds.

USAGE:
  if errors.Is(err, consolidation.ErrMissingColumn) { ... }

  var mc *consolidation.MissingColumnError
  if errors.As(err, &mc) { log.Printf("%s missing from %s", mc.Column, mc.Table) }

SEE ALSO:
  - normalize.go: Produces validation errors
  - engine.go: Produces consistency errors
*/
package consolidation

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingColumn is returned when a required column is absent from an
	// input table. Fatal; the run aborts before aggregation.
	ErrMissingColumn = errors.New("required column missing")

	// ErrNoDataRemaining is returned when filtering leaves the sales or
	// stock table empty. Fatal; there is nothing to allocate.
	ErrNoDataRemaining = errors.New("no data remaining after filtering")

	// ErrBalanceLookup is returned when movement enrichment references a
	// (store, product) pair absent from the balance set. Movements are only
	// built from balance keys, so this is an internal-consistency assertion.
	ErrBalanceLookup = errors.New("movement references unknown balance")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MissingColumnError names the missing column and the table it is missing
// from.
type MissingColumnError struct {
	Table  string // "sales", "stock" or "whitelist"
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q in %s table", e.Column, e.Table)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// NoDataRemainingError identifies which table filtering emptied out.
type NoDataRemainingError struct {
	Table string // "sales" or "stock"
}

func (e *NoDataRemainingError) Error() string {
	return fmt.Sprintf("no %s rows remaining after filtering; adjust whitelist or brand/store selections", e.Table)
}

func (e *NoDataRemainingError) Unwrap() error { return ErrNoDataRemaining }

// LookupError identifies the (store, product) pair that enrichment could not
// resolve against the balance set.
type LookupError struct {
	Store       string
	ProductCode string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no balance for store %q product %q", e.Store, e.ProductCode)
}

func (e *LookupError) Unwrap() error { return ErrBalanceLookup }

// =============================================================================
// WARNINGS - Non-fatal run conditions
// =============================================================================

const (
	// WarnEmptyWhitelist is recorded when the whitelist has no usable
	// entries; the product filter is skipped and allocation proceeds.
	WarnEmptyWhitelist = "no valid part numbers in whitelist; skipping product filter"
)

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than an engine defect.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrNoDataRemaining)
}
