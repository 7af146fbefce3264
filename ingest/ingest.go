/*
Package ingest turns uploaded files into consolidation tables.

PURPOSE:
  The ingestion edge of the system: reads CSV and XLSX files into the
  Table interchange format the engine consumes. The first row is the
  header; every other row is data. No cleaning happens here: text
  normalization and numeric coercion are the engine's job.

FORMATS:
  .csv           encoding/csv with ragged rows allowed (short rows read
                 as empty cells downstream)
  .xlsx / .xlsm  first sheet of the workbook via excelize

SEE ALSO:
  - consolidation/types.go: The Table type
  - report: The export side of the same boundary
*/
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/warp/consolidation-engine/consolidation"
)

// ReadCSV parses CSV content into a table. Rows may have varying field
// counts; the header row defines the columns.
func ReadCSV(r io.Reader) (consolidation.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return consolidation.Table{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return consolidation.Table{}, nil
	}
	return consolidation.Table{Columns: records[0], Rows: records[1:]}, nil
}

// ReadXLSX parses the first sheet of an xlsx workbook into a table.
func ReadXLSX(r io.Reader) (consolidation.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return consolidation.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return consolidation.Table{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return consolidation.Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return consolidation.Table{}, nil
	}
	return consolidation.Table{Columns: rows[0], Rows: rows[1:]}, nil
}

// Read dispatches on the file name's extension. Unknown extensions are
// treated as CSV, the dominant upload format.
func Read(r io.Reader, name string) (consolidation.Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	default:
		return ReadCSV(r)
	}
}

// ReadFile reads a table from disk, dispatching on the extension.
func ReadFile(path string) (consolidation.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return consolidation.Table{}, err
	}
	defer f.Close()
	return Read(f, path)
}
