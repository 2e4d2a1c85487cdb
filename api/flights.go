package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"tripplanner/entities"

	"github.com/samber/lo"
)

// FlightsClient queries the travel-data provider for flight offers.
// Amounts come back in the provider's native currency and stay that way,
// conversion is the caller's concern.
type FlightsClient struct {
	client client
}

func NewFlightsClient(cfg Config) *FlightsClient {
	return &FlightsClient{client: newClient(cfg)}
}

type flightPayload struct {
	Token       string         `json:"token"`
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	DepartAt    time.Time      `json:"depart_at"`
	ArriveAt    time.Time      `json:"arrive_at"`
	Price       entities.Money `json:"price"`
}

type flightSearchResponse struct {
	Flights []json.RawMessage `json:"flights"`
}

func (c *FlightsClient) SearchFlights(ctx context.Context, criteria entities.SearchCriteria) ([]entities.FlightOffer, error) {
	query := url.Values{}
	query.Set("origin", criteria.OriginID)
	query.Set("destination", criteria.DestinationID)
	query.Set("depart_date", criteria.DepartureDate.Format("2006-01-02"))
	query.Set("cabin_class", string(criteria.CabinClass))
	query.Set("currency", criteria.FlightBudget.Currency)
	if returnDate := criteria.EffectiveReturnDate(); !returnDate.IsZero() {
		query.Set("return_date", returnDate.Format("2006-01-02"))
	}

	var response flightSearchResponse
	if err := c.client.get(ctx, "/flights/search", query, &response); err != nil {
		return nil, fmt.Errorf("could not search flights: %w", err)
	}

	offers := make([]entities.FlightOffer, 0, len(response.Flights))
	for _, raw := range response.Flights {
		var payload flightPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, entities.ProviderError{Op: "flight search", Err: fmt.Errorf("malformed flight payload: %w", err)}
		}
		if payload.Price.Amount < 0 {
			// negative prices are provider garbage, drop them
			continue
		}

		offers = append(offers, entities.FlightOffer{
			Token:       payload.Token,
			Origin:      payload.Origin,
			Destination: payload.Destination,
			DepartAt:    payload.DepartAt,
			ArriveAt:    payload.ArriveAt,
			Price:       payload.Price,
			Raw:         raw,
		})
	}

	return lo.Filter(offers, func(offer entities.FlightOffer, _ int) bool {
		return offer.Token != ""
	}), nil
}
