package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// Manifest records what a harvest run did: the query, the counts at
// each stage, and the files written. It lands next to the exports so a
// dataset can always be traced back to the search that produced it.
type Manifest struct {
	Query        string    `yaml:"query"`
	Limit        int       `yaml:"limit"`
	TotalMatches int       `yaml:"total_matches"`
	Fetched      int       `yaml:"fetched"`
	Timestamp    time.Time `yaml:"timestamp"`
	Dataset      string    `yaml:"dataset"`
	Spreadsheet  string    `yaml:"spreadsheet,omitempty"`
	Notes        []string  `yaml:"notes,omitempty"`
}

// WriteManifest persists the manifest as <dir>/<YYYYMMDDHHMM>.yaml.
func WriteManifest(dir string, m Manifest) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}

	path := filepath.Join(dir, Stamp()+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return path, nil
}
