package entities

import (
	"fmt"
	"time"
)

type TripType string

const (
	TripTypeOneWay TripType = "one_way"
	TripTypeReturn TripType = "return"
)

type CabinClass string

const (
	CabinClassEconomy  CabinClass = "economy"
	CabinClassBusiness CabinClass = "business"
	CabinClassFirst    CabinClass = "first"
)

// SearchCriteria describes a single trip search. It is immutable for the
// duration of that search - a new search means a new criteria value.
type SearchCriteria struct {
	OriginID         string     `json:"origin_id"`
	DestinationID    string     `json:"destination_id"`
	DestinationQuery string     `json:"destination_query,omitempty"`
	DepartureDate    time.Time  `json:"departure_date"`
	ReturnDate       time.Time  `json:"return_date,omitempty"`
	CabinClass       CabinClass `json:"cabin_class"`
	FlightBudget     Money      `json:"flight_budget"`
	HotelBudget      Money      `json:"hotel_budget"`
	StayNights       int        `json:"stay_nights"`
	TripType         TripType   `json:"trip_type"`
}

func (c SearchCriteria) Validate() error {
	if c.OriginID == "" {
		return fmt.Errorf("origin is required")
	}
	if c.DestinationID == "" && c.DestinationQuery == "" {
		return fmt.Errorf("destination is required")
	}
	if c.DepartureDate.IsZero() {
		return fmt.Errorf("departure date is required")
	}
	if c.StayNights < 1 {
		return fmt.Errorf("stay nights must be at least 1")
	}

	switch c.TripType {
	case TripTypeOneWay:
		if !c.ReturnDate.IsZero() {
			return fmt.Errorf("return date not allowed for a one-way trip")
		}
	case TripTypeReturn:
		// return date may be omitted, it is derived from stay nights
	default:
		return fmt.Errorf("unknown trip type: %q", c.TripType)
	}

	if c.FlightBudget.Currency == "" || c.HotelBudget.Currency == "" {
		return fmt.Errorf("flight and hotel budgets are required")
	}

	return nil
}

// EffectiveReturnDate derives the return date from stay nights when the
// caller did not supply one.
func (c SearchCriteria) EffectiveReturnDate() time.Time {
	if c.TripType != TripTypeReturn {
		return time.Time{}
	}
	if !c.ReturnDate.IsZero() {
		return c.ReturnDate
	}
	return c.DepartureDate.AddDate(0, 0, c.StayNights)
}
