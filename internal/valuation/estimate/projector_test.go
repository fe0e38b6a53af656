package estimate

import (
	"testing"

	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/stretchr/testify/assert"
)

func TestProject_MeltIsAlwaysNinetyEightPercent(t *testing.T) {
	tables := [][]domain.EstimatePercent{
		nil,
		{{TransactionType: domain.Melt, Percent: 10}},
		{{TransactionType: domain.Pawn, Percent: 40}, {TransactionType: domain.Melt, Percent: 250}},
	}
	for _, value := range []float64{0, 1, 99.99, 1234.56, 1e6} {
		for _, rows := range tables {
			got := Project(value, rows)
			assert.InDelta(t, Round2(value*0.98), got.Melt, 1e-9, "value=%v", value)
		}
	}
}

func TestProject_MissingPercentageIsZero(t *testing.T) {
	got := Project(500, []domain.EstimatePercent{{TransactionType: domain.Buy, Percent: 60}})

	assert.Equal(t, 0.0, got.Pawn)
	assert.Equal(t, 300.0, got.Buy)
	assert.Equal(t, 0.0, got.Retail)
	assert.Equal(t, 490.0, got.Melt)
}

func TestProjectMetal_UnknownMetalTypeYieldsZeroes(t *testing.T) {
	table := domain.EstimateTable{Metal: map[int64][]domain.EstimatePercent{
		1: {{TransactionType: domain.Pawn, Percent: 50}},
	}}

	got := ProjectMetal(200, 99, table)

	assert.Equal(t, 0.0, got.Pawn)
	assert.Equal(t, 0.0, got.Buy)
	assert.Equal(t, 0.0, got.Retail)
	assert.Equal(t, 196.0, got.Melt)
}

func TestProject_RetailMayExceedValue(t *testing.T) {
	got := ProjectGem(100, domain.EstimateTable{Gem: []domain.EstimatePercent{
		{TransactionType: domain.Retail, Percent: 250},
	}})
	assert.Equal(t, 250.0, got.Retail)
}

func TestProject_RoundsToCents(t *testing.T) {
	got := Project(10.005, []domain.EstimatePercent{{TransactionType: domain.Pawn, Percent: 33.333}})
	assert.Equal(t, 3.33, got.Pawn)
	assert.Equal(t, 9.8, got.Melt)
}

func TestProject_NegativeInputsClampToZero(t *testing.T) {
	assert.Equal(t, domain.PriceEstimateBundle{}, Project(-10, []domain.EstimatePercent{{TransactionType: domain.Pawn, Percent: 50}}))

	got := Project(100, []domain.EstimatePercent{{TransactionType: domain.Pawn, Percent: -5}})
	assert.Equal(t, 0.0, got.Pawn)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 14.5, Round2(14.499999999999))
	assert.Equal(t, 0.0, Round2(0))
}

func TestAccumulationPolicy(t *testing.T) {
	first := domain.PriceEstimateBundle{Pawn: 20, Buy: 30, Melt: 98, Retail: 150}
	second := domain.PriceEstimateBundle{Pawn: 40, Buy: 60, Melt: 196, Retail: 300}

	assert.Equal(t, second, Replace.Apply(first, second))
	assert.Equal(t, domain.PriceEstimateBundle{Pawn: 60, Buy: 90, Melt: 294, Retail: 450}, Additive.Apply(first, second))
	assert.Equal(t, "replace", Replace.String())
	assert.Equal(t, "additive", Additive.String())
}

func TestAdditive_SecondaryDiamondsAccumulate(t *testing.T) {
	table := domain.EstimateTable{Gem: []domain.EstimatePercent{{TransactionType: domain.Pawn, Percent: 20}}}

	var total domain.PriceEstimateBundle
	total = Additive.Apply(total, ProjectGem(100, table))
	total = Additive.Apply(total, ProjectGem(200, table))

	assert.Equal(t, 60.0, total.Pawn)
}
