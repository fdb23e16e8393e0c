package eutils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

type esearchEnvelope struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count            string   `json:"count"`
	IDList           []string `json:"idlist"`
	QueryTranslation string   `json:"querytranslation"`
}

// Search submits query to ESearch and returns at most limit PMIDs in
// the order the endpoint produced them. The result is never re-sorted
// locally; ordering is whatever PubMed's relevance/recency order is.
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("search limit must be positive, got %d", limit)
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmode", "json")
	params.Set("retmax", strconv.Itoa(limit))

	body, err := c.ncbi.Get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	var env esearchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	count, _ := strconv.Atoi(env.Result.Count)

	return &SearchResult{
		Count:            count,
		PMIDs:            env.Result.IDList,
		QueryTranslation: env.Result.QueryTranslation,
	}, nil
}
