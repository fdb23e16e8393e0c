package eutils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const efetchFixture = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">38000001</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate>
              <Year>2023</Year>
              <Month>04</Month>
            </PubDate>
          </JournalIssue>
          <Title>Burns</Title>
          <ISOAbbreviation>Burns</ISOAbbreviation>
        </Journal>
        <ArticleTitle>Fluid resuscitation in severe burn injury</ArticleTitle>
        <Abstract>
          <AbstractText>Background text.</AbstractText>
          <AbstractText>Conclusion text.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author>
            <LastName>Doe</LastName>
            <ForeName>Jane</ForeName>
            <AffiliationInfo>
              <Affiliation>Burn Center, General Hospital</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author>
            <LastName>Roe</LastName>
            <ForeName>Alan</ForeName>
            <AffiliationInfo>
              <Affiliation>Burn Center, General Hospital</Affiliation>
            </AffiliationInfo>
            <AffiliationInfo>
              <Affiliation>University of Somewhere</Affiliation>
            </AffiliationInfo>
          </Author>
        </AuthorList>
      </Article>
      <MeshHeadingList>
        <MeshHeading>
          <DescriptorName UI="D002056" MajorTopicYN="Y">Burns</DescriptorName>
        </MeshHeading>
        <MeshHeading>
          <DescriptorName UI="D016638" MajorTopicYN="N">Critical Illness</DescriptorName>
        </MeshHeading>
      </MeshHeadingList>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">38000002</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate>
              <MedlineDate>2022 Nov-Dec</MedlineDate>
            </PubDate>
          </JournalIssue>
          <Title>Critical Care</Title>
        </Journal>
        <ArticleTitle>A sparse record</ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("db"); got != "pubmed" {
			t.Errorf("expected db=pubmed, got %q", got)
		}
		if got := q.Get("id"); got != "38000001,38000002" {
			t.Errorf("expected batched id param, got %q", got)
		}
		if got := q.Get("retmode"); got != "xml" {
			t.Errorf("expected retmode=xml, got %q", got)
		}
		w.Write([]byte(efetchFixture))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	records, err := c.Fetch(context.Background(), []string{"38000001", "38000002"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.PMID != "38000001" {
		t.Errorf("expected PMID 38000001, got %q", first.PMID)
	}
	if first.Title != "Fluid resuscitation in severe burn injury" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.Abstract != "Background text. Conclusion text." {
		t.Errorf("expected joined abstract sections, got %q", first.Abstract)
	}
	if first.Journal.Title != "Burns" {
		t.Errorf("expected journal Burns, got %q", first.Journal.Title)
	}
	if got := first.PubDate.Format(); got != "2023-04-01" {
		t.Errorf("expected date 2023-04-01, got %q", got)
	}

	if len(first.Authors) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(first.Authors))
	}
	if first.Authors[0].Name() != "Doe Jane" {
		t.Errorf("expected first author 'Doe Jane', got %q", first.Authors[0].Name())
	}
	if len(first.Authors[1].Affiliations) != 2 {
		t.Errorf("expected 2 affiliations for second author, got %d", len(first.Authors[1].Affiliations))
	}
	if first.Authors[0].Affiliations[0] != "Burn Center, General Hospital" {
		t.Errorf("unexpected affiliation %q", first.Authors[0].Affiliations[0])
	}

	if len(first.MeshHeadings) != 2 {
		t.Fatalf("expected 2 MeSH headings, got %d", len(first.MeshHeadings))
	}
	if first.MeshHeadings[0].Descriptor != "Burns" || !first.MeshHeadings[0].MajorTopic {
		t.Errorf("unexpected first heading %+v", first.MeshHeadings[0])
	}
}

func TestFetch_SparseRecordDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(efetchFixture))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	records, err := c.Fetch(context.Background(), []string{"38000001", "38000002"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sparse := records[1]
	if sparse.Abstract != "" {
		t.Errorf("expected empty abstract for record without one, got %q", sparse.Abstract)
	}
	if len(sparse.Authors) != 0 {
		t.Errorf("expected no authors, got %d", len(sparse.Authors))
	}
	if len(sparse.MeshHeadings) != 0 {
		t.Errorf("expected no MeSH headings, got %d", len(sparse.MeshHeadings))
	}
	// MedlineDate-only records carry no Year and have no usable date.
	if got := sparse.PubDate.Format(); got != NoDateFound {
		t.Errorf("expected %q, got %q", NoDateFound, got)
	}
}

func TestFetch_EmptyListIsNoOp(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	records, err := c.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty record set, got %d", len(records))
	}
	if called {
		t.Error("expected no network call for empty PMID list")
	}
}

func TestFetch_MalformedXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not xml}"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Fetch(context.Background(), []string{"1"}); err == nil {
		t.Fatal("expected parse error")
	}
}
