package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgmartins/pubharvest/internal/export"
	"github.com/jgmartins/pubharvest/internal/output"
)

// defaultQuery is the example query the tool ships with: recent reviews
// on critically ill burn patients.
const defaultQuery = `(("critical illness"[MeSH Terms] OR "critically ill"[All Fields]) ` +
	`AND ("burns"[MeSH Terms] OR "burn"[All Fields]) ` +
	`AND ("patients"[MeSH Terms] OR "patient"[All Fields])) ` +
	`AND ((y_1[Filter]) AND (review[Filter]))`

var flagXLSX bool

var harvestCmd = &cobra.Command{
	Use:   "harvest [query...]",
	Short: "Run the full pipeline: search, fetch, export, render",
	Long: `Harvest searches PubMed, fetches every matching record in one batch,
flattens the records into publication rows, writes the timestamped CSV
dataset (and optionally XLSX), renders one Markdown note per article,
and records a YAML manifest of the run. Without arguments the built-in
example query is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := defaultQuery
		if len(args) > 0 {
			query = strings.Join(args, " ")
		}

		client := newClient()
		ctx := cmd.Context()
		dir := outputDir()

		result, err := client.Search(ctx, query, flagLimit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		records, err := client.Fetch(ctx, result.PMIDs)
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}

		if flagVerbose {
			enc := json.NewEncoder(os.Stderr)
			enc.SetIndent("", "  ")
			for _, rec := range records {
				if err := enc.Encode(rec); err != nil {
					return fmt.Errorf("dumping record %s: %w", rec.PMID, err)
				}
			}
		}

		rows := export.BuildDataset(records)

		csvPath, err := export.WriteCSV(dir, rows)
		if err != nil {
			return fmt.Errorf("CSV export failed: %w", err)
		}

		var xlsxPath string
		if flagXLSX {
			xlsxPath, err = export.WriteXLSX(dir, rows)
			if err != nil {
				return fmt.Errorf("XLSX export failed: %w", err)
			}
		}

		fmt.Fprintf(os.Stderr, "Rendering %d Markdown notes...\n", len(rows))
		notes, err := export.WriteMarkdown(dir, rows)
		if err != nil {
			return fmt.Errorf("Markdown render failed: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Finished rendering Markdown notes.")

		manifest := export.Manifest{
			Query:        query,
			Limit:        flagLimit,
			TotalMatches: result.Count,
			Fetched:      len(records),
			Timestamp:    time.Now(),
			Dataset:      csvPath,
			Spreadsheet:  xlsxPath,
			Notes:        notes,
		}
		if _, err := export.WriteManifest(dir, manifest); err != nil {
			return fmt.Errorf("manifest write failed: %w", err)
		}

		return output.FormatDataset(os.Stdout, rows, outputCfg())
	},
}

func init() {
	harvestCmd.Flags().BoolVar(&flagXLSX, "xlsx", false, "Also export the dataset as XLSX")
}
