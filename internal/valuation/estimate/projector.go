// Package estimate projects a raw metal or gem value into pawn, buy, melt and
// retail price estimates.
package estimate

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
)

// MeltPercent is applied to every value regardless of the percentage tables.
const MeltPercent = 98

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Percent looks up the percentage for t. Missing rows are 0.
func Percent(rows []domain.EstimatePercent, t domain.TransactionType) float64 {
	for _, row := range rows {
		if row.TransactionType == t {
			return row.Percent
		}
	}
	return 0
}

// Project applies the percentage rows to value. Melt ignores the rows.
func Project(value float64, rows []domain.EstimatePercent) domain.PriceEstimateBundle {
	if value <= 0 {
		return domain.PriceEstimateBundle{}
	}
	return domain.PriceEstimateBundle{
		Pawn:   apply(value, Percent(rows, domain.Pawn)),
		Buy:    apply(value, Percent(rows, domain.Buy)),
		Melt:   apply(value, MeltPercent),
		Retail: apply(value, Percent(rows, domain.Retail)),
	}
}

// ProjectMetal projects a metal value with the rows for metalTypeID.
func ProjectMetal(value float64, metalTypeID int64, table domain.EstimateTable) domain.PriceEstimateBundle {
	return Project(value, table.Metal[metalTypeID])
}

// ProjectGem projects a diamond or stone value with the global gem rows.
func ProjectGem(value float64, table domain.EstimateTable) domain.PriceEstimateBundle {
	return Project(value, table.Gem)
}

func apply(value, percent float64) float64 {
	out := Round2(value * percent / 100)
	if out < 0 {
		return 0
	}
	return out
}
