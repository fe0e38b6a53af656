// Package domain contains the value types shared by the valuation engine.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type PreciousMetalType string

var (
	Gold      PreciousMetalType = "gold"
	Silver    PreciousMetalType = "silver"
	Platinum  PreciousMetalType = "platinum"
	Palladium PreciousMetalType = "palladium"
)

type TransactionType string

var (
	Pawn   TransactionType = "pawn"
	Buy    TransactionType = "buy"
	Melt   TransactionType = "melt"
	Retail TransactionType = "retail"
)

// ValueMode tracks whether a derived value follows its formula or an operator edit.
type ValueMode string

var (
	ValueAuto           ValueMode = "auto"
	ValueManualOverride ValueMode = "manual_override"
)

// Purity is a karat/fineness row. Value is the fraction in (0,1], e.g. 0.583 for 14K.
type Purity struct {
	ID    int64   `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// MetalAppraisal is the metal half of a jewelry item.
type MetalAppraisal struct {
	WeightGrams          float64           `json:"weight_grams"`
	MetalTypeID          int64             `json:"metal_type_id"`
	PreciousMetalType    PreciousMetalType `json:"precious_metal_type"`
	NonPreciousMetalType string            `json:"non_precious_metal_type,omitempty"`
	Purity               Purity            `json:"purity"`
	SpotPricePerGram     float64           `json:"spot_price_per_gram"`
	Category             string            `json:"category"`
	JewelryColor         string            `json:"jewelry_color,omitempty"`
	EstimatedValue       float64           `json:"estimated_value"`
	Mode                 ValueMode         `json:"mode"`
}

// EstimatePercent is one row of a price-estimate percentage table. Percent is 0-100
// but may exceed 100 for retail markups.
type EstimatePercent struct {
	TransactionType TransactionType `json:"transaction_type"`
	Percent         float64         `json:"estimate_percent"`
}

// EstimateTable holds the metal percentages keyed by metal type id and the single
// diamond/gem table.
type EstimateTable struct {
	Metal map[int64][]EstimatePercent `json:"metal"`
	Gem   []EstimatePercent           `json:"gem"`
}

// PriceEstimateBundle is the per-transaction-type projection of a raw value.
type PriceEstimateBundle struct {
	Pawn   float64 `json:"pawn"`
	Buy    float64 `json:"buy"`
	Melt   float64 `json:"melt"`
	Retail float64 `json:"retail"`
}

// Add sums two bundles field by field.
func (b PriceEstimateBundle) Add(o PriceEstimateBundle) PriceEstimateBundle {
	return PriceEstimateBundle{
		Pawn:   b.Pawn + o.Pawn,
		Buy:    b.Buy + o.Buy,
		Melt:   b.Melt + o.Melt,
		Retail: b.Retail + o.Retail,
	}
}

// Sub removes o from b, never going below zero.
func (b PriceEstimateBundle) Sub(o PriceEstimateBundle) PriceEstimateBundle {
	return PriceEstimateBundle{
		Pawn:   nonNegative(b.Pawn - o.Pawn),
		Buy:    nonNegative(b.Buy - o.Buy),
		Melt:   nonNegative(b.Melt - o.Melt),
		Retail: nonNegative(b.Retail - o.Retail),
	}
}

// Get returns the estimate for a transaction type.
func (b PriceEstimateBundle) Get(t TransactionType) float64 {
	switch t {
	case Pawn:
		return b.Pawn
	case Buy:
		return b.Buy
	case Melt:
		return b.Melt
	case Retail:
		return b.Retail
	default:
		return 0
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// JewelryLineItem is the finished result of an appraisal session.
type JewelryLineItem struct {
	ID               snowflake.ID        `json:"id"`
	Metal            *MetalAppraisal     `json:"metal,omitempty"`
	MetalEstimate    PriceEstimateBundle `json:"metal_estimate"`
	Primary          *GemEntry           `json:"primary_gem,omitempty"`
	Secondary        []GemEntry          `json:"secondary_gems"`
	GemEstimate      PriceEstimateBundle `json:"gem_estimate"`
	PriceEstimates   PriceEstimateBundle `json:"price_estimates"`
	LongDesc         string              `json:"long_desc"`
	ShortDesc        string              `json:"short_desc"`
	TotalWeightGrams *float64            `json:"total_weight_grams,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}
