package planner

import (
	"fmt"

	"tripplanner/entities"

	"github.com/google/uuid"
)

// AssembleTrip turns the current selection into an immutable TripPackage.
// Both slots must be filled, a missing slot is never auto-completed.
func AssembleTrip(flight *entities.FlightOffer, hotel *entities.HotelOffer, nights int, rates entities.RateTable) (entities.TripPackage, error) {
	if flight == nil || hotel == nil {
		return entities.TripPackage{}, entities.IncompleteSelectionError{
			MissingFlight: flight == nil,
			MissingHotel:  hotel == nil,
		}
	}
	if nights < 1 {
		nights = 1
	}

	stayPrice := hotel.PricePerNight.Mul(nights)
	total, err := flight.Price.AddConverted(stayPrice, rates)
	if err != nil {
		return entities.TripPackage{}, fmt.Errorf("could not total the trip price: %w", err)
	}

	return entities.TripPackage{
		TripID: uuid.New(),
		Flight: entities.FlightSummary{
			Token:       flight.Token,
			Origin:      flight.Origin,
			Destination: flight.Destination,
			DepartAt:    flight.DepartAt,
			ArriveAt:    flight.ArriveAt,
			Price:       flight.Price,
		},
		Hotel: entities.HotelSummary{
			ID:         hotel.ID,
			Name:       hotel.Name,
			Address:    hotel.Address,
			Nights:     nights,
			NightPrice: hotel.PricePerNight,
			StayPrice:  stayPrice,
		},
		TotalPrice: total,
	}, nil
}
