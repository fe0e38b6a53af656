package domain

import (
	"context"
	"time"
)

type Service interface {
	EstimateMetal(ctx context.Context, req MetalEstimateRequest) (*MetalEstimateResponse, error)
	EstimateGem(ctx context.Context, req GemEstimateRequest) (*GemEstimateResponse, error)
	Appraise(ctx context.Context, req AppraiseRequest) (*JewelryLineItem, error)
	QuotePawn(ctx context.Context, req PawnQuoteRequest) (*PawnQuoteResponse, error)
	RedeemTicket(ctx context.Context, req TicketActionRequest) (*TicketActionResponse, error)
	ExtendTicket(ctx context.Context, req TicketActionRequest) (*TicketActionResponse, error)
	ForfeitTicket(ctx context.Context, req TicketActionRequest) (*TicketActionResponse, error)
}

// MetalEstimateRequest identifies the metal by code and purity by id or label.
// SpotPricePerGram overrides the spot price table; ManualValue pins the value.
type MetalEstimateRequest struct {
	MetalType            string   `json:"metal_type"`
	PurityID             int64    `json:"purity_id"`
	PurityLabel          string   `json:"purity_label"`
	WeightGrams          float64  `json:"weight_grams"`
	SpotPricePerGram     *float64 `json:"spot_price_per_gram"`
	ManualValue          *float64 `json:"manual_value"`
	NonPreciousMetalType string   `json:"non_precious_metal_type"`
	Category             string   `json:"category"`
	JewelryColor         string   `json:"jewelry_color"`
}

type MetalEstimateResponse struct {
	Metal    MetalAppraisal      `json:"metal"`
	Estimate PriceEstimateBundle `json:"estimate"`
}

type GemEstimateRequest struct {
	Gem RawGem `json:"gem"`
}

type GemEstimateResponse struct {
	Category    GemCategory         `json:"category"`
	Gem         Gem                 `json:"gem"`
	Description string              `json:"description"`
	TotalValue  float64             `json:"total_value"`
	Estimate    PriceEstimateBundle `json:"estimate"`
}

// GemInput is a gem placed on an item in the given role.
type GemInput struct {
	Role GemRole `json:"role"`
	RawGem
}

type AppraiseRequest struct {
	Metal *MetalEstimateRequest `json:"metal"`
	Gems  []GemInput            `json:"gems"`
}

// PawnQuoteRequest leaves optional parameters nil to take the store defaults.
// A positive Sequence assigns a ticket number.
type PawnQuoteRequest struct {
	PrincipalAmount      float64    `json:"principal_amount"`
	AppraisalFee         *float64   `json:"appraisal_fee"`
	InterestRatePercent  *float64   `json:"interest_rate_percent"`
	InsuranceRatePercent *float64   `json:"insurance_rate_percent"`
	StorageFee           *float64   `json:"storage_fee"`
	FrequencyDays        *int       `json:"frequency_days"`
	TermDays             *int       `json:"term_days"`
	TransactionDate      *time.Time `json:"transaction_date"`
	Sequence             int64      `json:"sequence"`
}

type PawnQuoteResponse struct {
	Ticket PawnTicket `json:"ticket"`
}

// TicketActionRequest applies a payment or forfeiture to a ticket. At defaults to now.
type TicketActionRequest struct {
	Ticket  PawnTicket `json:"ticket"`
	Payment float64    `json:"payment"`
	At      *time.Time `json:"at"`
}

type TicketActionResponse struct {
	Ticket  PawnTicket  `json:"ticket"`
	Renewed *PawnTicket `json:"renewed,omitempty"`
}
