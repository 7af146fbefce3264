package consolidation_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/warp/consolidation-engine/consolidation"
)

// =============================================================================
// END-TO-END PIPELINE TESTS
// =============================================================================

func runInput() consolidation.Input {
	return consolidation.Input{
		Sales: salesTable(
			[]string{"Store A", "P1", "Widget", "10", ""},
			[]string{"Store B", "P1", "Widget", "2", ""},
			[]string{"Store A", "P2", "Gadget", "8", ""},
		),
		Stock: stockTable(
			[]string{"Store B", "P1", "Widget", "5", ""},
			[]string{"Central Warehouse", "P2", "Gadget", "20", ""},
		),
		Whitelist: whitelistTable("P1", "P2"),
	}
}

func TestEngineRun_FullPipeline(t *testing.T) {
	// GIVEN: Raw tables with a retail-covered P1 shortfall and a
	//        warehouse-covered P2 shortfall
	// WHEN: Running the full pipeline
	// THEN: Both shortfalls produce the expected enriched movements

	engine := &consolidation.Engine{}
	result, err := engine.Run(context.Background(), runInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Balances) != 4 {
		t.Errorf("expected 4 balances, got %d", len(result.Balances))
	}
	if len(result.Movements) != 2 {
		t.Fatalf("expected 2 movements, got %d: %+v", len(result.Movements), result.Movements)
	}

	p1 := result.Movements[0]
	if p1.Source != "Store B" || p1.Destination != "Store A" || !p1.Quantity.Equal(d(5)) {
		t.Errorf("P1: expected B→A qty 5, got %s→%s qty %v", p1.Source, p1.Destination, p1.Quantity)
	}
	if p1.ProductName != "WIDGET" {
		t.Errorf("P1: expected normalized name WIDGET, got %q", p1.ProductName)
	}
	if !p1.FromSOH.Equal(d(5)) || !p1.ToSales.Equal(d(10)) {
		t.Errorf("P1: enrichment snapshot wrong: From SOH %v, To Sales %v", p1.FromSOH, p1.ToSales)
	}

	p2 := result.Movements[1]
	if p2.Source != "Central Warehouse" || p2.Destination != "Store A" || !p2.Quantity.Equal(d(8)) {
		t.Errorf("P2: expected warehouse→A qty 8, got %s→%s qty %v", p2.Source, p2.Destination, p2.Quantity)
	}
}

func TestEngineRun_Idempotent(t *testing.T) {
	engine := &consolidation.Engine{}

	first, err := engine.Run(context.Background(), runInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Run(context.Background(), runInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Movements, second.Movements) {
		t.Errorf("repeated runs on identical input must produce identical movements")
	}
}

func TestEngineRun_ValidationAbortsBeforeAllocation(t *testing.T) {
	// GIVEN: A sales table missing a required column
	// WHEN: Running
	// THEN: The run fails fast; the progress observer never fires

	in := runInput()
	in.Sales.Columns = []string{"StoreName", "ProductCode", "ProductName"}

	allocated := false
	engine := &consolidation.Engine{Progress: func(done, total int) { allocated = true }}

	_, err := engine.Run(context.Background(), in)

	if !errors.Is(err, consolidation.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if allocated {
		t.Errorf("allocation must not start after a validation failure")
	}
}

func TestEngineRun_SurfacesWhitelistWarning(t *testing.T) {
	in := runInput()
	in.Whitelist = whitelistTable("nan", "")

	result, err := (&consolidation.Engine{}).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != consolidation.WarnEmptyWhitelist {
		t.Errorf("expected the empty-whitelist warning, got %v", result.Warnings)
	}
}

func TestEngineRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&consolidation.Engine{}).Run(ctx, runInput())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
