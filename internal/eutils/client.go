package eutils

import (
	"github.com/jgmartins/pubharvest/internal/ncbi"
)

// Client queries PubMed through the shared NCBI HTTP layer.
type Client struct {
	ncbi *ncbi.Client
}

// NewClient creates a PubMed client over an existing NCBI base client.
func NewClient(base *ncbi.Client) *Client {
	return &Client{ncbi: base}
}
