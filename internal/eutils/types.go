// Package eutils provides typed PubMed access over NCBI E-utilities:
// ESearch for PMID discovery and EFetch for full citation records. The
// external XML schema is parsed once at the fetch boundary into the
// explicit types below; the rest of the program never sees raw XML.
package eutils

// NoDateFound is returned by PubDate.Format when the record carries no
// publication year. A record without a year has no usable date; the
// sentinel is deliberate strict validation, not a default.
const NoDateFound = "No date found"

// SearchResult is the outcome of an ESearch query.
type SearchResult struct {
	Count            int      `json:"count"`
	PMIDs            []string `json:"pmids"`
	QueryTranslation string   `json:"query_translation,omitempty"`
}

// Record is one bibliographic citation as parsed from EFetch XML.
// Optional substructures degrade to zero values, never errors.
type Record struct {
	PMID         string        `json:"pmid"`
	Title        string        `json:"title"`
	Abstract     string        `json:"abstract,omitempty"`
	Authors      []Author      `json:"authors,omitempty"`
	Journal      Journal       `json:"journal"`
	PubDate      PubDate       `json:"pub_date"`
	MeshHeadings []MeshHeading `json:"mesh_headings,omitempty"`
}

// Author is one entry of a record's author list.
type Author struct {
	LastName     string   `json:"last_name"`
	ForeName     string   `json:"fore_name,omitempty"`
	Affiliations []string `json:"affiliations,omitempty"`
}

// Name renders the author as "LastName ForeName", the form used in the
// flattened Authors column.
func (a Author) Name() string {
	switch {
	case a.LastName == "":
		return a.ForeName
	case a.ForeName == "":
		return a.LastName
	}
	return a.LastName + " " + a.ForeName
}

// Journal holds the journal substructure of a citation.
type Journal struct {
	Title           string `json:"title"`
	ISOAbbreviation string `json:"iso_abbreviation,omitempty"`
}

// MeshHeading is one controlled-vocabulary subject tag.
type MeshHeading struct {
	Descriptor string `json:"descriptor"`
	MajorTopic bool   `json:"major_topic,omitempty"`
}

// PubDate is the publication date substructure. Fields are kept as the
// strings PubMed sends; no numeric validation is applied, so malformed
// values pass through to Format unchanged.
type PubDate struct {
	Year  string `json:"year,omitempty"`
	Month string `json:"month,omitempty"`
	Day   string `json:"day,omitempty"`
}

// Format renders the date as "YYYY-MM-DD". Month and Day default to
// "01" when absent; a missing Year yields NoDateFound.
func (d PubDate) Format() string {
	if d.Year == "" {
		return NoDateFound
	}
	month := d.Month
	if month == "" {
		month = "01"
	}
	day := d.Day
	if day == "" {
		day = "01"
	}
	return d.Year + "-" + month + "-" + day
}
