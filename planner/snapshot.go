package planner

import (
	"tripplanner/entities"

	"github.com/google/uuid"
)

type LegSnapshot[T any] struct {
	Status              LegStatus `json:"status"`
	Matches             []T       `json:"matches"`
	CheapestAlternative *T        `json:"cheapest_alternative,omitempty"`
	Error               string    `json:"error,omitempty"`
}

// PlanSnapshot is a read-only copy of a plan's state, safe to hand to the
// presentation layer. Totals and savings are recomputed on every snapshot.
type PlanSnapshot struct {
	PlanID   uuid.UUID               `json:"plan_id"`
	Status   PlanStatus              `json:"status"`
	Criteria entities.SearchCriteria `json:"criteria"`

	Flights LegSnapshot[entities.FlightOffer] `json:"flights"`
	Hotels  LegSnapshot[entities.HotelOffer]  `json:"hotels"`

	SelectedFlight *entities.FlightOffer `json:"selected_flight,omitempty"`
	SelectedHotel  *entities.HotelOffer  `json:"selected_hotel,omitempty"`

	CurrentTotal entities.Money `json:"current_total"`
	Savings      Savings        `json:"savings"`
}

func (o *Orchestrator) snapshotLocked(plan *Plan) (PlanSnapshot, error) {
	snapshot := PlanSnapshot{
		PlanID:   plan.ID,
		Status:   plan.status,
		Criteria: plan.criteria,
		Flights: LegSnapshot[entities.FlightOffer]{
			Status:              plan.flights.status,
			Matches:             plan.flights.result.Matches,
			CheapestAlternative: plan.flights.result.CheapestAlternative,
		},
		Hotels: LegSnapshot[entities.HotelOffer]{
			Status:              plan.hotels.status,
			Matches:             plan.hotels.result.Matches,
			CheapestAlternative: plan.hotels.result.CheapestAlternative,
		},
		SelectedFlight: plan.tracker.Flight(),
		SelectedHotel:  plan.tracker.Hotel(),
	}

	if plan.flights.err != nil {
		snapshot.Flights.Error = plan.flights.err.Error()
	}
	if plan.hotels.err != nil {
		snapshot.Hotels.Error = plan.hotels.err.Error()
	}

	total, err := plan.tracker.CurrentTotal(plan.criteria.StayNights)
	if err != nil {
		return PlanSnapshot{}, err
	}
	snapshot.CurrentTotal = total

	totalBudget, err := plan.criteria.FlightBudget.AddConverted(plan.criteria.HotelBudget, o.rates)
	if err != nil {
		return PlanSnapshot{}, err
	}

	savings, err := ComputeSavings(totalBudget, total, o.rates)
	if err != nil {
		return PlanSnapshot{}, err
	}
	snapshot.Savings = savings

	return snapshot, nil
}
