package api

import (
	"context"
	"fmt"
	"net/url"

	"tripplanner/entities"
)

// DestinationsClient resolves free-text destination queries to canonical
// destination ids.
type DestinationsClient struct {
	client client
}

func NewDestinationsClient(cfg Config) *DestinationsClient {
	return &DestinationsClient{client: newClient(cfg)}
}

type destinationSearchResponse struct {
	Destinations []entities.Destination `json:"destinations"`
}

func (c *DestinationsClient) Resolve(ctx context.Context, query string) (entities.Destination, error) {
	if query == "" {
		return entities.Destination{}, entities.ErrDestinationNotFound
	}

	params := url.Values{}
	params.Set("query", query)

	var response destinationSearchResponse
	if err := c.client.get(ctx, "/destinations", params, &response); err != nil {
		return entities.Destination{}, fmt.Errorf("could not resolve destination: %w", err)
	}

	if len(response.Destinations) == 0 {
		return entities.Destination{}, entities.ErrDestinationNotFound
	}

	// the provider returns candidates by relevance, the first one wins
	return response.Destinations[0], nil
}
