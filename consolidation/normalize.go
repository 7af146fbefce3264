/*
normalize.go - Input validation, text normalization and filtering

PURPOSE:
  First stage of the pipeline. Validates that the required columns exist,
  normalizes product identifiers and names, builds the product whitelist,
  and filters rows by whitelist and brand/store-brand criteria. Everything
  downstream can assume clean, filtered records.

NORMALIZATION RULES:
  - Product codes and names: trimmed, upper-cased
  - Empty or missing cells coerce to the literal string "nan" before any
    comparison. This preserves the upstream system's behavior, where text
    coercion of a missing value produces "nan"; it also makes "blank cell"
    and "literal nan" the same case, which is exactly how the whitelist
    drops unusable entries.

FILTER ORDER:
  1. Whitelist (product codes); an unusable whitelist skips this filter
     with a warning instead of failing
  2. Brand selection (sales BrandName / stock Brand columns, if present)
  3. Store-brand selection (case-insensitive substring on StoreName)
  Filtering that empties either table is fatal: NoDataRemainingError.

SEE ALSO:
  - errors.go: MissingColumnError, NoDataRemainingError, WarnEmptyWhitelist
  - aggregate.go: Consumes the normalized records
*/
package consolidation

import "strings"

// Required input columns. Extra columns are ignored.
var (
	salesColumns = []string{"StoreName", "ProductCode", "ProductName", "Quantity"}
	stockColumns = []string{"StoreName", "ProductCode", "ProductName", "ActualStock"}
)

const whitelistColumn = "Part No"

// NormalizedInput is the output of the normalization stage.
type NormalizedInput struct {
	Sales     []SalesRecord
	Stock     []StockRecord
	Whitelist Whitelist
	Warnings  []string
}

// normalizeText trims a cell, coerces emptiness to "nan" and upper-cases the
// result. Applied to product codes and product names.
func normalizeText(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		t = "nan"
	}
	return strings.ToUpper(t)
}

// Normalize validates and cleans the three raw input tables and applies the
// whitelist and filter criteria. It never mutates its inputs.
func Normalize(sales, stock, whitelist Table, filter FilterCriteria) (*NormalizedInput, error) {
	for _, col := range salesColumns {
		if sales.ColumnIndex(col) < 0 {
			return nil, &MissingColumnError{Table: "sales", Column: col}
		}
	}
	for _, col := range stockColumns {
		if stock.ColumnIndex(col) < 0 {
			return nil, &MissingColumnError{Table: "stock", Column: col}
		}
	}
	if whitelist.ColumnIndex(whitelistColumn) < 0 {
		return nil, &MissingColumnError{Table: "whitelist", Column: whitelistColumn}
	}

	out := &NormalizedInput{Whitelist: buildWhitelist(whitelist)}
	if out.Whitelist.Empty() {
		out.Warnings = append(out.Warnings, WarnEmptyWhitelist)
	}

	out.Sales = normalizeSales(sales, out.Whitelist, filter)
	out.Stock = normalizeStock(stock, out.Whitelist, filter)

	if len(out.Sales) == 0 {
		return nil, &NoDataRemainingError{Table: "sales"}
	}
	if len(out.Stock) == 0 {
		return nil, &NoDataRemainingError{Table: "stock"}
	}
	return out, nil
}

// buildWhitelist collects normalized part numbers, dropping entries whose
// lower-cased value is "nan" (blank cells included, per normalizeText).
func buildWhitelist(t Table) Whitelist {
	idx := t.ColumnIndex(whitelistColumn)
	w := make(Whitelist)
	for _, row := range t.Rows {
		code := normalizeText(t.Cell(row, idx))
		if strings.ToLower(code) == "nan" {
			continue
		}
		w[code] = struct{}{}
	}
	return w
}

func normalizeSales(t Table, w Whitelist, filter FilterCriteria) []SalesRecord {
	var (
		storeIdx = t.ColumnIndex("StoreName")
		codeIdx  = t.ColumnIndex("ProductCode")
		nameIdx  = t.ColumnIndex("ProductName")
		qtyIdx   = t.ColumnIndex("Quantity")
		brandIdx = t.ColumnIndex("BrandName")
	)

	var records []SalesRecord
	for _, row := range t.Rows {
		code := normalizeText(t.Cell(row, codeIdx))
		if !w.Empty() && !w.Contains(code) {
			continue
		}
		if !brandSelected(filter.Brands, brandIdx, t.Cell(row, brandIdx)) {
			continue
		}
		store := t.Cell(row, storeIdx)
		if !storeBrandSelected(filter.StoreBrands, store) {
			continue
		}
		records = append(records, SalesRecord{
			Store:       store,
			ProductCode: code,
			ProductName: normalizeText(t.Cell(row, nameIdx)),
			Quantity:    ParseQuantity(t.Cell(row, qtyIdx)),
		})
	}
	return records
}

func normalizeStock(t Table, w Whitelist, filter FilterCriteria) []StockRecord {
	var (
		storeIdx = t.ColumnIndex("StoreName")
		codeIdx  = t.ColumnIndex("ProductCode")
		nameIdx  = t.ColumnIndex("ProductName")
		stockIdx = t.ColumnIndex("ActualStock")
		brandIdx = t.ColumnIndex("Brand")
	)

	var records []StockRecord
	for _, row := range t.Rows {
		code := normalizeText(t.Cell(row, codeIdx))
		if !w.Empty() && !w.Contains(code) {
			continue
		}
		if !brandSelected(filter.Brands, brandIdx, t.Cell(row, brandIdx)) {
			continue
		}
		store := t.Cell(row, storeIdx)
		if !storeBrandSelected(filter.StoreBrands, store) {
			continue
		}
		records = append(records, StockRecord{
			Store:       store,
			ProductCode: code,
			ProductName: normalizeText(t.Cell(row, nameIdx)),
			ActualStock: ParseQuantity(t.Cell(row, stockIdx)),
		})
	}
	return records
}

// brandSelected applies the brand filter. Tables without a brand column pass
// through unfiltered even when brands are selected, matching the upstream
// behavior of optional brand metadata.
func brandSelected(brands []string, brandIdx int, cell string) bool {
	if len(brands) == 0 || brandIdx < 0 {
		return true
	}
	value := strings.TrimSpace(cell)
	for _, b := range brands {
		if value == b {
			return true
		}
	}
	return false
}

// storeBrandSelected applies the store-brand filter: case-insensitive
// substring match of any selected store brand against the store name.
func storeBrandSelected(storeBrands []string, storeName string) bool {
	if len(storeBrands) == 0 {
		return true
	}
	name := strings.ToLower(storeName)
	for _, sb := range storeBrands {
		if sb != "" && strings.Contains(name, strings.ToLower(sb)) {
			return true
		}
	}
	return false
}
