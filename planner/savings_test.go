package planner_test

import (
	"testing"

	"tripplanner/entities"
	"tripplanner/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSavings(t *testing.T) {
	budget := entities.NewMoney(60_000_00, "PKR")
	total := entities.NewMoney(45_000_00, "PKR")

	savings, err := planner.ComputeSavings(budget, total, rates)
	require.NoError(t, err)

	assert.Equal(t, int64(15_000_00), savings.Amount.Amount)
	assert.Equal(t, "PKR", savings.Amount.Currency)
	assert.Equal(t, 25.0, savings.Percent)
}

func TestComputeSavingsFlooredAtZero(t *testing.T) {
	budget := entities.NewMoney(40_000_00, "PKR")
	total := entities.NewMoney(55_000_00, "PKR")

	savings, err := planner.ComputeSavings(budget, total, rates)
	require.NoError(t, err)

	assert.Equal(t, int64(0), savings.Amount.Amount)
	assert.Equal(t, 0.0, savings.Percent)
}

func TestComputeSavingsZeroBudget(t *testing.T) {
	savings, err := planner.ComputeSavings(entities.Money{Currency: "USD"}, entities.NewMoney(100_00, "USD"), rates)
	require.NoError(t, err)

	assert.Equal(t, int64(0), savings.Amount.Amount)
	assert.Equal(t, 0.0, savings.Percent)
}

func TestComputeSavingsNothingSelected(t *testing.T) {
	budget := entities.NewMoney(500_00, "USD")

	savings, err := planner.ComputeSavings(budget, entities.Money{}, rates)
	require.NoError(t, err)

	assert.Equal(t, budget.Amount, savings.Amount.Amount)
	assert.Equal(t, 100.0, savings.Percent)
}

func TestComputeSavingsRoundsToOneDecimal(t *testing.T) {
	budget := entities.NewMoney(300_00, "USD")
	total := entities.NewMoney(100_00, "USD")

	savings, err := planner.ComputeSavings(budget, total, rates)
	require.NoError(t, err)

	// 200/300 = 66.666... -> 66.7
	assert.Equal(t, 66.7, savings.Percent)
}

func TestComputeSavingsConvertsTotal(t *testing.T) {
	budget := entities.NewMoney(1_000_00, "USD")
	total := entities.NewMoney(100_000_00, "PKR") // 360 USD

	savings, err := planner.ComputeSavings(budget, total, rates)
	require.NoError(t, err)

	assert.Equal(t, "USD", savings.Amount.Currency)
	assert.Equal(t, int64(640_00), savings.Amount.Amount)
	assert.Equal(t, 64.0, savings.Percent)
}
