package planner

import (
	"math"

	"tripplanner/entities"
)

type Savings struct {
	Amount  entities.Money `json:"amount"`
	Percent float64        `json:"percent"`
}

// ComputeSavings returns how much of the total budget is left by the current
// selection, floored at zero, with the percentage rounded to one decimal.
// Pure - it is re-derived from selection and budget on every call, there is
// no accumulator to drift.
func ComputeSavings(totalBudget, currentTotal entities.Money, rates entities.RateTable) (Savings, error) {
	if totalBudget.Amount <= 0 {
		return Savings{Amount: entities.Money{Amount: 0, Currency: totalBudget.Currency}}, nil
	}

	total := currentTotal
	if !total.IsZero() {
		var err error
		total, err = total.Convert(totalBudget.Currency, rates)
		if err != nil {
			return Savings{}, err
		}
	}

	remaining := totalBudget.Amount - total.Amount
	if remaining < 0 {
		remaining = 0
	}

	percent := float64(remaining) / float64(totalBudget.Amount) * 100
	percent = math.Round(percent*10) / 10

	return Savings{
		Amount:  entities.Money{Amount: remaining, Currency: totalBudget.Currency},
		Percent: percent,
	}, nil
}
