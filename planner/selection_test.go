package planner_test

import (
	"testing"

	"tripplanner/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionReplacesNotAppends(t *testing.T) {
	tracker := planner.NewSelectionTracker(rates)

	flightA := flightOffer("a", 40_000_00, "PKR")
	flightB := flightOffer("b", 55_000_00, "PKR")

	tracker.SelectFlight(flightA)
	tracker.SelectFlight(flightB)

	require.NotNil(t, tracker.Flight())
	assert.Equal(t, "b", tracker.Flight().Token)

	total, err := tracker.CurrentTotal(1)
	require.NoError(t, err)
	assert.Equal(t, int64(55_000_00), total.Amount)
}

func TestSelectionTracksOneOfEachKind(t *testing.T) {
	tracker := planner.NewSelectionTracker(rates)

	tracker.SelectFlight(flightOffer("f", 30_000_00, "PKR"))
	tracker.SelectHotel(hotelOffer("h", 4_000_00, "PKR"))
	tracker.SelectHotel(hotelOffer("h2", 5_000_00, "PKR"))

	assert.Equal(t, "f", tracker.Flight().Token)
	assert.Equal(t, "h2", tracker.Hotel().ID)
}

func TestCurrentTotalUnselectedSlotsAreZero(t *testing.T) {
	tracker := planner.NewSelectionTracker(rates)

	total, err := tracker.CurrentTotal(3)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	tracker.SelectHotel(hotelOffer("h", 4_000_00, "PKR"))
	total, err = tracker.CurrentTotal(3)
	require.NoError(t, err)
	assert.Equal(t, int64(12_000_00), total.Amount)
	assert.Equal(t, "PKR", total.Currency)
}

func TestCurrentTotalMixedCurrencies(t *testing.T) {
	tracker := planner.NewSelectionTracker(rates)

	tracker.SelectFlight(flightOffer("f", 200_00, "USD"))
	tracker.SelectHotel(hotelOffer("h", 10_000_00, "PKR"))

	total, err := tracker.CurrentTotal(2)
	require.NoError(t, err)
	assert.Equal(t, "USD", total.Currency)
	// 200 USD + 20000 PKR (72 USD) = 272 USD
	assert.Equal(t, int64(272_00), total.Amount)
}

func TestResetClearsBothSlots(t *testing.T) {
	tracker := planner.NewSelectionTracker(rates)

	tracker.SelectFlight(flightOffer("f", 100_00, "USD"))
	tracker.SelectHotel(hotelOffer("h", 50_00, "USD"))
	tracker.Reset()

	assert.Nil(t, tracker.Flight())
	assert.Nil(t, tracker.Hotel())

	total, err := tracker.CurrentTotal(1)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestSelectionIsACopy(t *testing.T) {
	tracker := planner.NewSelectionTracker(rates)

	offer := flightOffer("f", 100_00, "USD")
	tracker.SelectFlight(offer)
	offer.Token = "mutated"

	assert.Equal(t, "f", tracker.Flight().Token)
}
