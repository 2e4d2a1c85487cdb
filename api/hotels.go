package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"tripplanner/entities"
)

var errUnknownDestination = errors.New("unknown destination")

type DestinationResolver interface {
	Resolve(ctx context.Context, query string) (entities.Destination, error)
}

// HotelsClient queries the travel-data provider for hotel offers. On an
// unknown destination it attempts at most one fallback resolution of the
// free-text destination before failing.
type HotelsClient struct {
	client       client
	destinations DestinationResolver
}

func NewHotelsClient(cfg Config, destinations DestinationResolver) *HotelsClient {
	if destinations == nil {
		panic("destination resolver is nil")
	}
	return &HotelsClient{
		client:       newClient(cfg),
		destinations: destinations,
	}
}

type hotelPayload struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Address       string               `json:"address"`
	PricePerNight entities.Money       `json:"price_per_night"`
	ReviewScore   float64              `json:"review_score"`
	PhotoURLs     []string             `json:"photo_urls"`
	Coordinates   entities.Coordinates `json:"coordinates"`
}

type hotelSearchResponse struct {
	Hotels []json.RawMessage `json:"hotels"`
}

func (c *HotelsClient) SearchHotels(ctx context.Context, criteria entities.SearchCriteria) ([]entities.HotelOffer, error) {
	destinationID := criteria.DestinationID
	resolvedAlready := false

	if destinationID == "" {
		destination, err := c.destinations.Resolve(ctx, criteria.DestinationQuery)
		if err != nil {
			return nil, fmt.Errorf("could not resolve destination %q: %w", criteria.DestinationQuery, err)
		}
		destinationID = destination.ID
		resolvedAlready = true
	}

	offers, err := c.search(ctx, destinationID, criteria)
	if errors.Is(err, errUnknownDestination) && !resolvedAlready && criteria.DestinationQuery != "" {
		// a single fallback resolution step, then give up
		destination, resolveErr := c.destinations.Resolve(ctx, criteria.DestinationQuery)
		if resolveErr != nil {
			return nil, fmt.Errorf("could not resolve destination %q: %w", criteria.DestinationQuery, resolveErr)
		}
		return c.search(ctx, destination.ID, criteria)
	}
	if errors.Is(err, errUnknownDestination) {
		return nil, entities.ProviderError{Op: "hotel search", Err: err}
	}

	return offers, err
}

func (c *HotelsClient) search(ctx context.Context, destinationID string, criteria entities.SearchCriteria) ([]entities.HotelOffer, error) {
	checkout := criteria.DepartureDate.AddDate(0, 0, criteria.StayNights)

	query := url.Values{}
	query.Set("dest_id", destinationID)
	query.Set("arrival_date", criteria.DepartureDate.Format("2006-01-02"))
	query.Set("departure_date", checkout.Format("2006-01-02"))
	query.Set("nights", strconv.Itoa(criteria.StayNights))
	query.Set("currency", criteria.HotelBudget.Currency)

	var response hotelSearchResponse
	if err := c.client.get(ctx, "/hotels/search", query, &response); err != nil {
		if errors.Is(err, errUnknownDestination) {
			return nil, err
		}
		return nil, fmt.Errorf("could not search hotels: %w", err)
	}

	offers := make([]entities.HotelOffer, 0, len(response.Hotels))
	for _, raw := range response.Hotels {
		var payload hotelPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, entities.ProviderError{Op: "hotel search", Err: fmt.Errorf("malformed hotel payload: %w", err)}
		}
		if payload.ID == "" || payload.PricePerNight.Amount < 0 {
			continue
		}

		offers = append(offers, entities.HotelOffer{
			ID:            payload.ID,
			Name:          payload.Name,
			Address:       payload.Address,
			PricePerNight: payload.PricePerNight,
			ReviewScore:   payload.ReviewScore,
			PhotoURLs:     payload.PhotoURLs,
			Coordinates:   payload.Coordinates,
			Raw:           raw,
		})
	}

	return offers, nil
}
