/*
main.go - Batch CLI for one-shot consolidation analyses

PURPOSE:
  Runs the full pipeline against three input files and writes the
  consolidation report spreadsheet, without standing up the HTTP server.
  Suited to cron jobs and ad-hoc analyses.

USAGE:
  consolidate -sales sales.csv -stock soh.csv -whitelist format.csv \
      -out consolidation_report.xlsx [-brands "Acme,Zenith"] \
      [-store-brands "Bose,Imagine"]

  Input files may be CSV or XLSX; the extension decides the parser.

SEE ALSO:
  - consolidation/run.go: The pipeline this drives
  - report: Spreadsheet export
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/warp/consolidation-engine/consolidation"
	"github.com/warp/consolidation-engine/ingest"
	"github.com/warp/consolidation-engine/report"
)

func main() {
	var (
		salesPath     = flag.String("sales", "", "Path to sales file (CSV or XLSX)")
		stockPath     = flag.String("stock", "", "Path to stock-on-hand file (CSV or XLSX)")
		whitelistPath = flag.String("whitelist", "", "Path to part-number whitelist file (CSV or XLSX)")
		outPath       = flag.String("out", "consolidation_report.xlsx", "Output report path")
		brands        = flag.String("brands", "", "Comma-separated brand selection (empty: all)")
		storeBrands   = flag.String("store-brands", "", "Comma-separated store-brand selection (empty: all)")
		quiet         = flag.Bool("quiet", false, "Suppress progress output")
	)
	flag.Parse()

	if *salesPath == "" || *stockPath == "" || *whitelistPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -sales, -stock and -whitelist are required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*salesPath, *stockPath, *whitelistPath, *outPath, *brands, *storeBrands, *quiet); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(salesPath, stockPath, whitelistPath, outPath, brands, storeBrands string, quiet bool) error {
	sales, err := ingest.ReadFile(salesPath)
	if err != nil {
		return fmt.Errorf("read sales: %w", err)
	}
	stock, err := ingest.ReadFile(stockPath)
	if err != nil {
		return fmt.Errorf("read stock: %w", err)
	}
	whitelist, err := ingest.ReadFile(whitelistPath)
	if err != nil {
		return fmt.Errorf("read whitelist: %w", err)
	}

	engine := &consolidation.Engine{}
	if !quiet {
		engine.Progress = func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rallocating %d/%d", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	result, err := engine.Run(context.Background(), consolidation.Input{
		Sales:     sales,
		Stock:     stock,
		Whitelist: whitelist,
		Filter: consolidation.FilterCriteria{
			Brands:      splitList(brands),
			StoreBrands: splitList(storeBrands),
		},
	})
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer out.Close()
	if err := report.WriteXLSX(out, result.Movements); err != nil {
		return err
	}

	printSummary(result, outPath)
	return nil
}

func printSummary(result *consolidation.Result, outPath string) {
	balances := report.SummarizeBalances(result.Balances)
	movements := report.Summarize(result.Movements)

	fmt.Printf("Balances:        %d (%d stores, %d products)\n",
		balances.Rows, balances.UniqueStores, balances.UniqueProducts)
	fmt.Printf("Total sales:     %s\n", balances.TotalSales)
	fmt.Printf("Total stock:     %s\n", balances.TotalStock)
	fmt.Printf("Movements:       %d\n", movements.Movements)
	fmt.Printf("Transfer qty:    %s\n", movements.TotalQuantity)
	fmt.Printf("Report written:  %s\n", outPath)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
