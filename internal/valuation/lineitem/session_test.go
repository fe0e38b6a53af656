package lineitem

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/smallbiznis/pawnshop/internal/valuation/estimate"
	"github.com/smallbiznis/pawnshop/internal/valuation/gem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gemTable = domain.EstimateTable{Gem: []domain.EstimatePercent{
	{TransactionType: domain.Pawn, Percent: 20},
	{TransactionType: domain.Buy, Percent: 30},
	{TransactionType: domain.Retail, Percent: 150},
}}

func ring() domain.MetalAppraisal {
	return domain.MetalAppraisal{
		WeightGrams:       5.2,
		MetalTypeID:       1,
		PreciousMetalType: domain.Gold,
		Purity:            domain.Purity{ID: 2, Label: "14K", Value: 0.583},
		SpotPricePerGram:  60,
		Category:          "ring",
		JewelryColor:      "yellow",
		EstimatedValue:    181.896,
	}
}

func TestAddPrimaryGem_RejectsSecondPrimaryAndKeepsState(t *testing.T) {
	diamond := domain.Diamond{Shape: "round", EstimatedValue: 1000}
	s, err := NewSession().AddPrimaryGem(diamond, gem.Project(diamond, gemTable))
	require.NoError(t, err)

	stone := domain.Stone{Type: "ruby", EstimatedValue: 300, Authentic: true}
	next, err := s.AddPrimaryGem(stone, gem.Project(stone, gemTable))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPrimaryGemCategory)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, s, next)
	assert.Equal(t, domain.CategoryDiamond, next.PrimaryGem().Gem.Category())

	_, err = s.AddPrimaryGem(domain.Diamond{Shape: "oval"}, domain.PriceEstimateBundle{})
	assert.ErrorIs(t, err, domain.ErrPrimaryGemExists)

	replaced, err := s.RemovePrimaryGem().AddPrimaryGem(stone, gem.Project(stone, gemTable))
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryStone, replaced.PrimaryGem().Gem.Category())
}

func TestAddSecondaryGem_AlwaysSucceedsAndMixesCategories(t *testing.T) {
	s, err := NewSession().AddPrimaryGem(domain.Diamond{Shape: "round"}, domain.PriceEstimateBundle{})
	require.NoError(t, err)

	s = s.AddSecondaryGem(domain.Diamond{Shape: "round"}, domain.PriceEstimateBundle{})
	s = s.AddSecondaryGem(domain.Stone{Type: "sapphire"}, domain.PriceEstimateBundle{})
	s = s.AddSecondaryGem(domain.Diamond{Shape: "baguette"}, domain.PriceEstimateBundle{})

	assert.Len(t, s.SecondaryGems(), 3)
}

func TestAddSecondaryGem_EstimatesAccumulate(t *testing.T) {
	pawnOnly := domain.EstimateTable{Gem: []domain.EstimatePercent{{TransactionType: domain.Pawn, Percent: 20}}}
	first := domain.Diamond{EstimatedValue: 100}
	second := domain.Diamond{EstimatedValue: 200}

	s := NewSession().
		AddSecondaryGem(first, gem.Project(first, pawnOnly)).
		AddSecondaryGem(second, gem.Project(second, pawnOnly))

	assert.Equal(t, 60.0, s.GemEstimate().Pawn)
	assert.Equal(t, 294.0, s.GemEstimate().Melt)

	s, err := s.RemoveSecondaryGem(0)
	require.NoError(t, err)
	assert.Equal(t, 40.0, s.GemEstimate().Pawn)

	_, err = s.RemoveSecondaryGem(5)
	assert.ErrorIs(t, err, domain.ErrGemNotFound)
}

func TestWithMetal_ReplacesBundle(t *testing.T) {
	s := NewSession().
		WithMetal(ring(), domain.PriceEstimateBundle{Pawn: 100, Melt: 178.26}).
		WithMetal(ring(), domain.PriceEstimateBundle{Pawn: 120, Melt: 178.26})

	assert.Equal(t, 120.0, s.MetalEstimate().Pawn)
	assert.Equal(t, domain.PriceEstimateBundle{}, s.WithoutMetal().MetalEstimate())
}

func TestSession_ReducersDoNotMutateReceiver(t *testing.T) {
	base := NewSession().AddSecondaryGem(domain.Stone{Type: "opal"}, domain.PriceEstimateBundle{Pawn: 5})

	_ = base.AddSecondaryGem(domain.Stone{Type: "onyx"}, domain.PriceEstimateBundle{Pawn: 7})
	_, _ = base.RemoveSecondaryGem(0)

	assert.Len(t, base.SecondaryGems(), 1)
	assert.Equal(t, 5.0, base.GemEstimate().Pawn)
}

func TestFinish_BuildsLineItem(t *testing.T) {
	metalTable := domain.EstimateTable{Metal: map[int64][]domain.EstimatePercent{
		1: {{TransactionType: domain.Pawn, Percent: 50}, {TransactionType: domain.Buy, Percent: 70}, {TransactionType: domain.Retail, Percent: 200}},
	}}
	metal := ring()
	s := NewSession().WithMetal(metal, estimate.ProjectMetal(100, 1, metalTable))

	primary := domain.Diamond{Shape: "round", WeightCarats: 0.5, Quantity: 1, EstimatedValue: 1000}
	s, err := s.AddPrimaryGem(primary, gem.Project(primary, gemTable))
	require.NoError(t, err)

	s = s.AddSecondaryGem(domain.Diamond{Shape: "round", WeightCarats: 0.05, Quantity: 4, EstimatedValue: 200}, gem.Project(domain.Diamond{EstimatedValue: 200}, gemTable))
	s = s.AddSecondaryGem(domain.Stone{Type: "ruby", WeightCarats: 0.1, Quantity: 2, EstimatedValue: 50, Valuation: domain.ValuationEach}, gem.Project(domain.Stone{EstimatedValue: 50, Quantity: 2, Valuation: domain.ValuationEach}, gemTable))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	id := node.Generate()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	item, err := s.Finish(FinishOptions{ID: id, Now: now, ConvertCaratsToGrams: true, GramsPerCarat: 0.2})
	require.NoError(t, err)

	assert.Equal(t, id, item.ID)
	assert.Equal(t, now, item.CreatedAt)
	assert.Equal(t, "5.2g 14K Yellow Gold Ring, 0.5ct Round Diamond, with 2 secondary gems", item.LongDesc)
	assert.Equal(t, "14K Gold Ring, Round Diamond +2", item.ShortDesc)

	// metal 50/70/98/200 of 100, gems 20/30/98/150 of 1000+200+100
	assert.InDelta(t, 50+260, item.PriceEstimates.Pawn, 1e-9)
	assert.InDelta(t, 70+390, item.PriceEstimates.Buy, 1e-9)
	assert.InDelta(t, 98+1274, item.PriceEstimates.Melt, 1e-9)
	assert.InDelta(t, 200+1950, item.PriceEstimates.Retail, 1e-9)

	require.NotNil(t, item.TotalWeightGrams)
	// 5.2 + (0.5 + 0.2 + 0.2) × 0.2
	assert.InDelta(t, 5.38, *item.TotalWeightGrams, 1e-9)
}

func TestFinish_WithoutConversionOmitsTotalWeight(t *testing.T) {
	item, err := NewSession().WithMetal(ring(), domain.PriceEstimateBundle{}).Finish(FinishOptions{GramsPerCarat: 0.2})
	require.NoError(t, err)
	assert.Nil(t, item.TotalWeightGrams)
	assert.Equal(t, "5.2g 14K Yellow Gold Ring", item.LongDesc)
	assert.NotNil(t, item.Secondary)
}

func TestFinish_EmptySession(t *testing.T) {
	_, err := NewSession().Finish(FinishOptions{})
	assert.ErrorIs(t, err, domain.ErrEmptySession)
}

func TestDescriptions_GemOnly(t *testing.T) {
	s := NewSession().AddSecondaryGem(domain.Stone{Type: "pearl"}, domain.PriceEstimateBundle{})
	assert.Equal(t, "with 1 secondary gem", s.LongDescription())
	assert.Equal(t, "1 secondary gem", s.ShortDescription())
}

func TestDescriptions_NonASCIIWords(t *testing.T) {
	metal := ring()
	metal.WeightGrams = 5
	metal.JewelryColor = "or rosé"
	metal.Category = "échelle bracelet"
	primary := domain.Stone{Type: "émeraude", Authentic: true}

	s, err := NewSession().
		WithMetal(metal, domain.PriceEstimateBundle{}).
		AddPrimaryGem(primary, domain.PriceEstimateBundle{})
	require.NoError(t, err)

	assert.Equal(t, "5g 14K Or Rosé Gold Échelle Bracelet, Émeraude", s.LongDescription())
	assert.Equal(t, "14K Gold Échelle Bracelet, Émeraude", s.ShortDescription())
}
