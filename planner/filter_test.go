package planner_test

import (
	"testing"

	"tripplanner/entities"
	"tripplanner/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rates = entities.RateTable{
	"USD": 1_000_000,
	"EUR": 1_080_000,
	"PKR": 3_600,
}

func flightOffer(token string, priceMinor int64, currency string) entities.FlightOffer {
	return entities.FlightOffer{
		Token: token,
		Price: entities.NewMoney(priceMinor, currency),
	}
}

func hotelOffer(id string, nightMinor int64, currency string) entities.HotelOffer {
	return entities.HotelOffer{
		ID:            id,
		PricePerNight: entities.NewMoney(nightMinor, currency),
	}
}

func TestFilterFlightsWithinBudget(t *testing.T) {
	offers := []entities.FlightOffer{
		flightOffer("a", 30_000_00, "PKR"),
		flightOffer("b", 45_000_00, "PKR"),
		flightOffer("c", 70_000_00, "PKR"),
	}
	budget := entities.NewMoney(50_000_00, "PKR")

	result, err := planner.FilterFlights(offers, budget, rates)
	require.NoError(t, err)

	require.Len(t, result.Matches, 2)
	assert.Equal(t, "a", result.Matches[0].Token)
	assert.Equal(t, "b", result.Matches[1].Token)
	assert.Nil(t, result.CheapestAlternative)
}

func TestFilterFlightsAllOverBudget(t *testing.T) {
	offers := []entities.FlightOffer{
		flightOffer("a", 30_000_00, "PKR"),
		flightOffer("b", 45_000_00, "PKR"),
		flightOffer("c", 70_000_00, "PKR"),
	}
	budget := entities.NewMoney(20_000_00, "PKR")

	result, err := planner.FilterFlights(offers, budget, rates)
	require.NoError(t, err)

	assert.Empty(t, result.Matches)
	require.NotNil(t, result.CheapestAlternative)
	assert.Equal(t, "a", result.CheapestAlternative.Token)
	assert.Equal(t, int64(30_000_00), result.CheapestAlternative.Price.Amount)
}

func TestFilterFlightsExactBudgetMatches(t *testing.T) {
	offers := []entities.FlightOffer{flightOffer("a", 50_000_00, "PKR")}
	budget := entities.NewMoney(50_000_00, "PKR")

	result, err := planner.FilterFlights(offers, budget, rates)
	require.NoError(t, err)

	assert.Len(t, result.Matches, 1)
	assert.Nil(t, result.CheapestAlternative)
}

func TestFilterFlightsCheapestTieKeepsProviderOrder(t *testing.T) {
	offers := []entities.FlightOffer{
		flightOffer("first", 30_000_00, "PKR"),
		flightOffer("second", 30_000_00, "PKR"),
	}
	budget := entities.NewMoney(10_000_00, "PKR")

	result, err := planner.FilterFlights(offers, budget, rates)
	require.NoError(t, err)

	assert.Empty(t, result.Matches)
	require.NotNil(t, result.CheapestAlternative)
	assert.Equal(t, "first", result.CheapestAlternative.Token)
}

func TestFilterFlightsConvertsBudgetCurrency(t *testing.T) {
	// 100 USD budget, offers in PKR: 100 USD ~ 27,777.78 PKR
	offers := []entities.FlightOffer{
		flightOffer("cheap", 20_000_00, "PKR"),
		flightOffer("pricey", 40_000_00, "PKR"),
	}
	budget := entities.NewMoney(100_00, "USD")

	result, err := planner.FilterFlights(offers, budget, rates)
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "cheap", result.Matches[0].Token)
}

func TestFilterFlightsUnknownCurrency(t *testing.T) {
	offers := []entities.FlightOffer{flightOffer("a", 100_00, "XXX")}
	budget := entities.NewMoney(50_00, "USD")

	_, err := planner.FilterFlights(offers, budget, rates)
	var unknownErr entities.UnknownCurrencyError
	require.ErrorAs(t, err, &unknownErr)
}

func TestFilterFlightsEmptyInput(t *testing.T) {
	result, err := planner.FilterFlights(nil, entities.NewMoney(100_00, "USD"), rates)
	require.NoError(t, err)

	assert.Empty(t, result.Matches)
	assert.Nil(t, result.CheapestAlternative)
}

func TestFilterHotelsMultipliesNights(t *testing.T) {
	// 4000 PKR/night over 3 nights = 12000 PKR > 10000 PKR budget
	offers := []entities.HotelOffer{hotelOffer("h1", 4_000_00, "PKR")}
	budget := entities.NewMoney(10_000_00, "PKR")

	result, err := planner.FilterHotels(offers, budget, 3, rates)
	require.NoError(t, err)

	assert.Empty(t, result.Matches)
	require.NotNil(t, result.CheapestAlternative)
	assert.Equal(t, "h1", result.CheapestAlternative.ID)

	// same hotel fits a two-night stay
	result, err = planner.FilterHotels(offers, budget, 2, rates)
	require.NoError(t, err)
	assert.Len(t, result.Matches, 1)
	assert.Nil(t, result.CheapestAlternative)
}

func TestFilterHotelsCheapestByNightPrice(t *testing.T) {
	offers := []entities.HotelOffer{
		hotelOffer("expensive", 9_000_00, "PKR"),
		hotelOffer("cheap", 6_000_00, "PKR"),
	}
	budget := entities.NewMoney(5_000_00, "PKR")

	result, err := planner.FilterHotels(offers, budget, 2, rates)
	require.NoError(t, err)

	assert.Empty(t, result.Matches)
	require.NotNil(t, result.CheapestAlternative)
	assert.Equal(t, "cheap", result.CheapestAlternative.ID)
}
