package entities

import (
	"errors"
	"fmt"
)

// ProviderError wraps any failure talking to the travel-data provider:
// network errors, timeouts, malformed payloads. It is recovered locally as a
// partial search result, never propagated across the orchestrator boundary.
type ProviderError struct {
	Op  string
	Err error
}

func (e ProviderError) Error() string {
	return fmt.Sprintf("provider error during %s: %v", e.Op, e.Err)
}

func (e ProviderError) Unwrap() error {
	return e.Err
}

type IncompleteSelectionError struct {
	MissingFlight bool
	MissingHotel  bool
}

func (e IncompleteSelectionError) Error() string {
	switch {
	case e.MissingFlight && e.MissingHotel:
		return "select both a flight and a hotel before assembling the trip"
	case e.MissingFlight:
		return "select a flight before assembling the trip"
	default:
		return "select a hotel before assembling the trip"
	}
}

func (e IncompleteSelectionError) IsPermanent() bool {
	return true
}

var (
	// ErrDestinationNotFound is returned by the destination resolver when a
	// free-text query matches nothing.
	ErrDestinationNotFound = errors.New("destination not found")

	// ErrOverBudget is returned when an offer above the leg budget is
	// selected without the explicit override flag.
	ErrOverBudget = errors.New("offer exceeds the leg budget, selecting it requires the override flag")

	// ErrOfferNotFound is returned when a selection refers to an offer id
	// that is not part of the current search results.
	ErrOfferNotFound = errors.New("offer not found in current search results")

	// ErrPlanNotFound is returned for an unknown trip plan id.
	ErrPlanNotFound = errors.New("trip plan not found")
)
