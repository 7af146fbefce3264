package ingest_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warp/consolidation-engine/ingest"
)

func TestReadCSV_HeaderAndRows(t *testing.T) {
	csv := strings.Join([]string{
		"StoreName,ProductCode,ProductName,Quantity",
		"Store A,P1,Widget,10",
		"Store B,P2,Gadget,3",
	}, "\n")

	table, err := ingest.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"StoreName", "ProductCode", "ProductName", "Quantity"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Store A", "P1", "Widget", "10"}, table.Rows[0])
}

func TestReadCSV_RaggedRowsAllowed(t *testing.T) {
	csv := "StoreName,ProductCode,ProductName,Quantity\nStore A,P1\n"

	table, err := ingest.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	// Short rows read as empty cells through Table.Cell.
	assert.Equal(t, "", table.Cell(table.Rows[0], table.ColumnIndex("Quantity")))
}

func TestReadCSV_EmptyInput(t *testing.T) {
	table, err := ingest.ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestReadXLSX_FirstSheet(t *testing.T) {
	// GIVEN: A workbook written by excelize itself
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Part No"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"P1"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"P2"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	// WHEN: Reading it back
	table, err := ingest.ReadXLSX(&buf)
	require.NoError(t, err)

	// THEN: Header and rows round-trip
	assert.Equal(t, []string{"Part No"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "P1", table.Rows[0][0])
}

func TestReadXLSX_GarbageFails(t *testing.T) {
	_, err := ingest.ReadXLSX(strings.NewReader("this is not a zip archive"))
	assert.Error(t, err)
}

func TestRead_DispatchesOnExtension(t *testing.T) {
	table, err := ingest.Read(strings.NewReader("Part No\nP1\n"), "whitelist.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"Part No"}, table.Columns)

	// Unknown extensions fall back to CSV.
	table, err = ingest.Read(strings.NewReader("Part No\nP1\n"), "whitelist.txt")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
}
