/*
Package report is the reporting collaborator: summary statistics over a
completed analysis and the downloadable spreadsheet.

PURPOSE:
  The engine hands this package the balance set and the enriched movement
  sequence; this package turns them into the numbers the summary panels
  show and the consolidation report spreadsheet operations teams work
  from. Nothing here feeds back into allocation.

EXPORT CONTRACT:
  Column names and order in the spreadsheet are stable:
    ProductName, Product, Source, Destination, Quantity,
    From SOH, To SOH, From Sales, To Sales
  Sheet name Consolidation_Report; bold wrapped header on a #D7E4BC fill
  with thin borders; every column 20 wide.

SEE ALSO:
  - consolidation/engine.go: Produces the movements summarized here
*/
package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/warp/consolidation-engine/consolidation"
)

// =============================================================================
// SUMMARIES
// =============================================================================

// Summary aggregates the movement list for the report header panels.
type Summary struct {
	Movements          int
	TotalQuantity      decimal.Decimal
	UniqueProducts     int
	UniqueSources      int
	UniqueDestinations int
}

// Summarize computes movement-level summary metrics.
func Summarize(movements []consolidation.EnrichedMovement) Summary {
	var (
		products     = make(map[string]struct{})
		sources      = make(map[string]struct{})
		destinations = make(map[string]struct{})
		total        = decimal.Zero
	)
	for _, m := range movements {
		products[m.ProductCode] = struct{}{}
		sources[m.Source] = struct{}{}
		destinations[m.Destination] = struct{}{}
		total = total.Add(m.Quantity)
	}
	return Summary{
		Movements:          len(movements),
		TotalQuantity:      total,
		UniqueProducts:     len(products),
		UniqueSources:      len(sources),
		UniqueDestinations: len(destinations),
	}
}

// BalanceSummary aggregates the balance set for the preview panels.
type BalanceSummary struct {
	Rows           int
	UniqueStores   int
	UniqueProducts int
	TotalSales     decimal.Decimal
	TotalStock     decimal.Decimal
}

// SummarizeBalances computes balance-level summary metrics.
func SummarizeBalances(balances []consolidation.Balance) BalanceSummary {
	var (
		stores   = make(map[string]struct{})
		products = make(map[string]struct{})
		sales    = decimal.Zero
		stock    = decimal.Zero
	)
	for _, b := range balances {
		stores[b.Store] = struct{}{}
		products[b.ProductCode] = struct{}{}
		sales = sales.Add(b.Sales)
		stock = stock.Add(b.Stock)
	}
	return BalanceSummary{
		Rows:           len(balances),
		UniqueStores:   len(stores),
		UniqueProducts: len(products),
		TotalSales:     sales,
		TotalStock:     stock,
	}
}

// =============================================================================
// SPREADSHEET EXPORT
// =============================================================================

const sheetName = "Consolidation_Report"

// Headers is the stable export column order.
var Headers = []string{
	"ProductName", "Product", "Source", "Destination", "Quantity",
	"From SOH", "To SOH", "From Sales", "To Sales",
}

// WriteXLSX writes the consolidation report spreadsheet to w.
func WriteXLSX(w io.Writer, movements []consolidation.EnrichedMovement) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D7E4BC"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, h := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetName, "A", "I", 20); err != nil {
		return err
	}

	for i, m := range movements {
		row := i + 2
		text := []any{m.ProductName, m.ProductCode, m.Source, m.Destination}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &text); err != nil {
			return err
		}
		// Quantity columns carry the exact decimal text; SetCellDefault
		// keeps the cell numeric without a float64 round-trip.
		quantities := []decimal.Decimal{
			m.Quantity, m.FromSOH, m.ToSOH, m.FromSales, m.ToSales,
		}
		for j, q := range quantities {
			cell, err := excelize.CoordinatesToCellName(5+j, row)
			if err != nil {
				return err
			}
			if err := f.SetCellDefault(sheetName, cell, q.String()); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
