// Package export flattens fetched PubMed records into publication rows
// and persists them: a timestamped delimited dataset (CSV, optionally
// XLSX), one Markdown note per article, and a YAML run manifest.
package export

import (
	"strings"

	"github.com/jgmartins/pubharvest/internal/eutils"
)

// ArticleURLPrefix is prepended to a PMID to form the citation URL.
const ArticleURLPrefix = "https://www.ncbi.nlm.nih.gov/pubmed/"

// Publication is one flattened row of the exported dataset. Every field
// is a string; optional source substructures flatten to "".
//
// Date carries the formatted publication date (or its no-date
// sentinel) for display; it is not part of the fixed tabular columns.
type Publication struct {
	PMID         string
	Title        string
	Abstract     string
	Authors      string
	Journal      string
	Keywords     string
	URL          string
	Affiliations string
	Date         string
}

// Columns is the fixed header of the tabular exports, in column order.
var Columns = []string{"PMID", "Title", "Abstract", "Authors", "Journal", "Keywords", "URL", "Affiliations"}

// fields returns the row values in Columns order.
func (p Publication) fields() []string {
	return []string{p.PMID, p.Title, p.Abstract, p.Authors, p.Journal, p.Keywords, p.URL, p.Affiliations}
}

// RowFromRecord flattens one record into a publication row. The author
// list is walked once: each author contributes "LastName ForeName" to
// the Authors join, and its first affiliation (when present) to the
// affiliation list, de-duplicated with first-occurrence order kept.
func RowFromRecord(rec eutils.Record) Publication {
	authors := make([]string, 0, len(rec.Authors))
	var affiliations []string
	seen := make(map[string]struct{})

	for _, au := range rec.Authors {
		authors = append(authors, au.Name())
		if len(au.Affiliations) == 0 {
			continue
		}
		aff := au.Affiliations[0]
		if _, dup := seen[aff]; dup {
			continue
		}
		seen[aff] = struct{}{}
		affiliations = append(affiliations, aff)
	}

	keywords := make([]string, 0, len(rec.MeshHeadings))
	for _, mh := range rec.MeshHeadings {
		keywords = append(keywords, mh.Descriptor)
	}

	return Publication{
		PMID:         rec.PMID,
		Title:        rec.Title,
		Abstract:     rec.Abstract,
		Authors:      strings.Join(authors, ", "),
		Journal:      rec.Journal.Title,
		Keywords:     strings.Join(keywords, ", "),
		URL:          ArticleURLPrefix + rec.PMID,
		Affiliations: strings.Join(affiliations, "; "),
		Date:         rec.PubDate.Format(),
	}
}

// BuildDataset flattens records in input order, one row per record.
func BuildDataset(records []eutils.Record) []Publication {
	rows := make([]Publication, 0, len(records))
	for _, rec := range records {
		rows = append(rows, RowFromRecord(rec))
	}
	return rows
}
