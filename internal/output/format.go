// Package output formats harvest results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jgmartins/pubharvest/internal/eutils"
	"github.com/jgmartins/pubharvest/internal/export"
)

// Config selects the output mode. Plain text is the default; JSON and
// the rich table are opt-in and mutually exclusive (JSON wins).
type Config struct {
	JSON  bool
	Human bool
}

// FormatSearchResult writes a stage-one preview: result count, the
// query as PubMed translated it, and the PMID list.
func FormatSearchResult(w io.Writer, result *eutils.SearchResult, cfg Config) error {
	if cfg.JSON {
		return writeJSON(w, result)
	}
	if cfg.Human {
		return formatSearchHuman(w, result)
	}

	if result.Count == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d results", result.Count)
	if len(result.PMIDs) < result.Count {
		fmt.Fprintf(w, " (showing %d)", len(result.PMIDs))
	}
	fmt.Fprintln(w)

	if result.QueryTranslation != "" {
		fmt.Fprintf(w, "Query: %s\n", result.QueryTranslation)
	}
	fmt.Fprintln(w)

	for i, id := range result.PMIDs {
		fmt.Fprintf(w, "  %d. PMID: %s\n", i+1, id)
	}
	return nil
}

// FormatDataset writes the flattened publication rows after a harvest.
func FormatDataset(w io.Writer, rows []export.Publication, cfg Config) error {
	if cfg.JSON {
		return writeJSON(w, rows)
	}
	if cfg.Human {
		return formatDatasetHuman(w, rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No publications harvested.")
		return nil
	}

	for i, row := range rows {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "PMID: %s\n", row.PMID)
		fmt.Fprintf(w, "Title: %s\n", row.Title)
		if row.Authors != "" {
			fmt.Fprintf(w, "Authors: %s\n", row.Authors)
		}
		fmt.Fprintf(w, "Journal: %s\n", row.Journal)
		if row.Date != "" {
			fmt.Fprintf(w, "Date: %s\n", row.Date)
		}
		if row.Keywords != "" {
			fmt.Fprintf(w, "Keywords: %s\n", row.Keywords)
		}
		fmt.Fprintf(w, "URL: %s\n", row.URL)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
