package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// nowFunc supplies the timestamp used for export filenames. Tests pin
// it to get deterministic names.
var nowFunc = time.Now

// Stamp returns the minute-granularity timestamp used to name exports.
// Two exports within the same minute produce the same name and the
// later one overwrites the earlier; that collision policy is accepted
// behavior, not something to silently work around.
func Stamp() string {
	return nowFunc().Format("200601021504")
}

// WriteCSV persists rows as <dir>/<YYYYMMDDHHMM>.csv, creating dir if
// needed. The header row is always written, so an empty dataset yields
// a header-only file. Returns the path written.
func WriteCSV(dir string, rows []Publication) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Stamp()+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.fields()); err != nil {
			return "", fmt.Errorf("writing CSV row for PMID %s: %w", row.PMID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV output: %w", err)
	}

	return path, nil
}
