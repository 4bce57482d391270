package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"staybook/pkg/model"
)

const listingsPath = "/api/v1/listings"

type ListingClient struct {
	httpClient *HttpClient
}

func NewListingClient(baseUrl string, opts ...Option) *ListingClient {
	return &ListingClient{
		httpClient: NewHttpClient(baseUrl, opts...),
	}
}

func (c *ListingClient) ListListings(ctx context.Context, filters model.SearchFilters) ([]model.Listing, error) {
	path := listingsPath
	if q := filters.Query(); len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, NewAPIError(resp)
	}

	var wrapper struct {
		Data []model.Listing `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode listings: %s: %w", resp.ToString(), err)
	}
	return wrapper.Data, nil
}

func (c *ListingClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(ctx, maxWait)
}
