package eutils

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
)

// XML shapes for the EFetch pubmed response. Only the substructures the
// flattened export needs are mapped; everything else is ignored.

type xmlArticleSet struct {
	XMLName  xml.Name    `xml:"PubmedArticleSet"`
	Articles []xmlPubmed `xml:"PubmedArticle"`
}

type xmlPubmed struct {
	Citation xmlCitation `xml:"MedlineCitation"`
}

type xmlCitation struct {
	PMID         string           `xml:"PMID"`
	Article      xmlArticle       `xml:"Article"`
	MeshHeadings []xmlMeshHeading `xml:"MeshHeadingList>MeshHeading"`
}

type xmlArticle struct {
	Journal      xmlJournal    `xml:"Journal"`
	ArticleTitle string        `xml:"ArticleTitle"`
	Abstract     xmlAbstract   `xml:"Abstract"`
	AuthorList   xmlAuthorList `xml:"AuthorList"`
}

type xmlJournal struct {
	Title           string     `xml:"Title"`
	ISOAbbreviation string     `xml:"ISOAbbreviation"`
	PubDate         xmlPubDate `xml:"JournalIssue>PubDate"`
}

type xmlPubDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

type xmlAbstract struct {
	Texts []string `xml:"AbstractText"`
}

type xmlAuthorList struct {
	Authors []xmlAuthor `xml:"Author"`
}

type xmlAuthor struct {
	LastName     string   `xml:"LastName"`
	ForeName     string   `xml:"ForeName"`
	Affiliations []string `xml:"AffiliationInfo>Affiliation"`
}

type xmlMeshHeading struct {
	Descriptor xmlDescriptor `xml:"DescriptorName"`
}

type xmlDescriptor struct {
	MajorTopic string `xml:"MajorTopicYN,attr"`
	Name       string `xml:",chardata"`
}

// Fetch retrieves full citation records for pmids in a single EFetch
// request. An empty PMID list is a valid no-op: it returns an empty
// slice without touching the network. Record order follows the
// endpoint's response order.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]Record, error) {
	if len(pmids) == 0 {
		return []Record{}, nil
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "xml")

	body, err := c.ncbi.Get(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("fetch request failed: %w", err)
	}

	return parseRecords(body)
}

func parseRecords(data []byte) ([]Record, error) {
	var set xmlArticleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing PubMed XML: %w", err)
	}

	records := make([]Record, 0, len(set.Articles))
	for _, pa := range set.Articles {
		records = append(records, convertRecord(pa))
	}
	return records, nil
}

// convertRecord maps one raw citation onto the typed Record. This is
// the only place the external schema's looseness is visible; missing
// substructures become zero values here.
func convertRecord(pa xmlPubmed) Record {
	cit := pa.Citation
	art := cit.Article

	rec := Record{
		PMID:  cit.PMID,
		Title: art.ArticleTitle,
		Journal: Journal{
			Title:           art.Journal.Title,
			ISOAbbreviation: art.Journal.ISOAbbreviation,
		},
		PubDate: PubDate{
			Year:  art.Journal.PubDate.Year,
			Month: art.Journal.PubDate.Month,
			Day:   art.Journal.PubDate.Day,
		},
	}

	// Structured abstracts arrive as multiple AbstractText sections;
	// join them the way the flattened export expects.
	if len(art.Abstract.Texts) > 0 {
		rec.Abstract = strings.Join(art.Abstract.Texts, " ")
	}

	for _, au := range art.AuthorList.Authors {
		rec.Authors = append(rec.Authors, Author{
			LastName:     au.LastName,
			ForeName:     au.ForeName,
			Affiliations: au.Affiliations,
		})
	}

	for _, mh := range cit.MeshHeadings {
		rec.MeshHeadings = append(rec.MeshHeadings, MeshHeading{
			Descriptor: mh.Descriptor.Name,
			MajorTopic: mh.Descriptor.MajorTopic == "Y",
		})
	}

	return rec
}
