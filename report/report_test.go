package report_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warp/consolidation-engine/consolidation"
	"github.com/warp/consolidation-engine/report"
)

func em(part, src, dst string, qty float64) consolidation.EnrichedMovement {
	return consolidation.EnrichedMovement{
		Movement: consolidation.Movement{
			ProductName: "PRODUCT " + part,
			ProductCode: part,
			Source:      src,
			Destination: dst,
			Quantity:    decimal.NewFromFloat(qty),
		},
		FromSOH:   decimal.NewFromInt(10),
		ToSOH:     decimal.NewFromInt(0),
		FromSales: decimal.NewFromInt(1),
		ToSales:   decimal.NewFromInt(9),
	}
}

func TestSummarize_CountsAndTotals(t *testing.T) {
	movements := []consolidation.EnrichedMovement{
		em("P1", "Main Warehouse", "Store A", 5),
		em("P1", "Store B", "Store A", 2),
		em("P2", "Main Warehouse", "Store C", 3),
	}

	s := report.Summarize(movements)

	assert.Equal(t, 3, s.Movements)
	assert.True(t, s.TotalQuantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 2, s.UniqueProducts)
	assert.Equal(t, 2, s.UniqueSources)
	assert.Equal(t, 2, s.UniqueDestinations)
}

func TestSummarize_Empty(t *testing.T) {
	s := report.Summarize(nil)
	assert.Equal(t, 0, s.Movements)
	assert.True(t, s.TotalQuantity.IsZero())
}

func TestSummarizeBalances(t *testing.T) {
	balances := []consolidation.Balance{
		{Store: "Store A", ProductCode: "P1", Sales: decimal.NewFromInt(10), Stock: decimal.NewFromInt(2)},
		{Store: "Store B", ProductCode: "P1", Sales: decimal.NewFromInt(3), Stock: decimal.NewFromInt(5)},
		{Store: "Store A", ProductCode: "P2", Sales: decimal.NewFromInt(1), Stock: decimal.NewFromInt(0)},
	}

	s := report.SummarizeBalances(balances)

	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 2, s.UniqueStores)
	assert.Equal(t, 2, s.UniqueProducts)
	assert.True(t, s.TotalSales.Equal(decimal.NewFromInt(14)))
	assert.True(t, s.TotalStock.Equal(decimal.NewFromInt(7)))
}

func TestWriteXLSX_SheetAndHeaderContract(t *testing.T) {
	// GIVEN: Two enriched movements
	var buf bytes.Buffer
	movements := []consolidation.EnrichedMovement{
		em("P1", "Main Warehouse", "Store A", 5),
		em("P2", "Store B", "Store C", 2),
	}

	// WHEN: Writing the report
	require.NoError(t, report.WriteXLSX(&buf, movements))

	// THEN: The workbook has the contract sheet, header order and rows
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Consolidation_Report"}, f.GetSheetList())

	rows, err := f.GetRows("Consolidation_Report")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, report.Headers, rows[0])

	assert.Equal(t, "PRODUCT P1", rows[1][0])
	assert.Equal(t, "P1", rows[1][1])
	assert.Equal(t, "Main Warehouse", rows[1][2])
	assert.Equal(t, "Store A", rows[1][3])
	assert.Equal(t, "5", rows[1][4])
}

func TestWriteXLSX_QuantitiesKeepDecimalPrecision(t *testing.T) {
	// GIVEN: A quantity whose digits exceed float64 precision
	var buf bytes.Buffer
	exact := decimal.RequireFromString("123456789.123456789")
	m := em("P1", "Main Warehouse", "Store A", 0)
	m.Quantity = exact

	// WHEN: Writing and re-reading the report
	require.NoError(t, report.WriteXLSX(&buf, []consolidation.EnrichedMovement{m}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Consolidation_Report")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// THEN: The cell holds the exact decimal text, not a float64 round-trip
	assert.Equal(t, "123456789.123456789", rows[1][4])
}

func TestWriteXLSX_EmptyMovements(t *testing.T) {
	// Header-only report for a run that produced no movements.

	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Consolidation_Report")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, report.Headers, rows[0])
}
