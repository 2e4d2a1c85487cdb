package planner

import (
	"tripplanner/entities"
)

// SelectionTracker holds at most one selected flight and one selected hotel.
// Selecting a new offer of a kind replaces the prior one, it never appends.
// Budget enforcement happens at the selection call site (the orchestrator),
// the tracker itself only tracks.
type SelectionTracker struct {
	flight *entities.FlightOffer
	hotel  *entities.HotelOffer
	rates  entities.RateTable
}

func NewSelectionTracker(rates entities.RateTable) *SelectionTracker {
	return &SelectionTracker{rates: rates}
}

func (t *SelectionTracker) SelectFlight(offer entities.FlightOffer) {
	t.flight = &offer
}

func (t *SelectionTracker) SelectHotel(offer entities.HotelOffer) {
	t.hotel = &offer
}

// Reset clears both slots. Called on every new search submission.
func (t *SelectionTracker) Reset() {
	t.flight = nil
	t.hotel = nil
}

func (t *SelectionTracker) Flight() *entities.FlightOffer {
	return t.flight
}

func (t *SelectionTracker) Hotel() *entities.HotelOffer {
	return t.hotel
}

// CurrentTotal is the selected flight price plus the selected hotel's stay
// price, with unselected slots contributing zero. The total is denominated
// in the flight's currency when both are selected.
func (t *SelectionTracker) CurrentTotal(nights int) (entities.Money, error) {
	var total entities.Money

	if t.flight != nil {
		total = t.flight.Price
	}
	if t.hotel != nil {
		stay := t.hotel.PricePerNight.Mul(nights)
		var err error
		total, err = total.AddConverted(stay, t.rates)
		if err != nil {
			return entities.Money{}, err
		}
	}

	return total, nil
}
