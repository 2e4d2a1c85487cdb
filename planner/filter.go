package planner

import (
	"fmt"
	"tripplanner/entities"
)

// FilterResult is the outcome of filtering one offer set against its budget.
// CheapestAlternative is taken from the unfiltered set, ascending by price
// with ties broken by provider order, and is populated only when Matches is
// empty - the caller can always show a "next cheapest" hint instead of a
// dead end.
type FilterResult[T any] struct {
	Matches             []T `json:"matches"`
	CheapestAlternative *T  `json:"cheapest_alternative,omitempty"`
}

// FilterFlights returns the flight offers priced at or under budget.
func FilterFlights(offers []entities.FlightOffer, budget entities.Money, rates entities.RateTable) (FilterResult[entities.FlightOffer], error) {
	return filterOffers(offers, budget, rates, func(o entities.FlightOffer) entities.Money {
		return o.Price
	})
}

// FilterHotels compares price-per-night times nights against the budget.
func FilterHotels(offers []entities.HotelOffer, budget entities.Money, nights int, rates entities.RateTable) (FilterResult[entities.HotelOffer], error) {
	if nights < 1 {
		nights = 1
	}
	return filterOffers(offers, budget, rates, func(o entities.HotelOffer) entities.Money {
		return o.PricePerNight.Mul(nights)
	})
}

func filterOffers[T any](offers []T, budget entities.Money, rates entities.RateTable, price func(T) entities.Money) (FilterResult[T], error) {
	var result FilterResult[T]

	var cheapest *T
	var cheapestPrice entities.Money

	for i, offer := range offers {
		offerPrice := price(offer)

		// budget is compared in the offer's native currency, offers are
		// never re-denominated here
		legBudget, err := budget.Convert(offerPrice.Currency, rates)
		if err != nil {
			return FilterResult[T]{}, fmt.Errorf("could not convert budget for comparison: %w", err)
		}

		cmp, err := offerPrice.Cmp(legBudget)
		if err != nil {
			return FilterResult[T]{}, err
		}
		if cmp <= 0 {
			result.Matches = append(result.Matches, offer)
		}

		if cheapest == nil {
			offer := offers[i]
			cheapest = &offer
			cheapestPrice = offerPrice
			continue
		}

		normalized, err := offerPrice.Convert(cheapestPrice.Currency, rates)
		if err != nil {
			return FilterResult[T]{}, err
		}
		// strictly cheaper wins, equal prices keep the earlier offer
		if cmp, _ := normalized.Cmp(cheapestPrice); cmp < 0 {
			offer := offers[i]
			cheapest = &offer
			cheapestPrice = normalized
		}
	}

	if len(result.Matches) == 0 {
		result.CheapestAlternative = cheapest
	}

	return result, nil
}
