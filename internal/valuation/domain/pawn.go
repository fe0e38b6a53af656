package domain

import "time"

type TicketState string

var (
	TicketOpen      TicketState = "open"
	TicketRedeemed  TicketState = "redeemed"
	TicketExtended  TicketState = "extended"
	TicketForfeited TicketState = "forfeited"
)

// PawnTermsInput carries the loan parameters. Nil pointers take the configured defaults.
type PawnTermsInput struct {
	PrincipalAmount      float64
	AppraisalFee         float64
	InterestRatePercent  *float64
	InsuranceRatePercent *float64
	StorageFee           *float64
	FrequencyDays        *int
	TermDays             *int
	TransactionDate      time.Time
}

// PawnLoanTerms is the fee schedule printed on a pawn ticket.
type PawnLoanTerms struct {
	PrincipalAmount       float64   `json:"principal_amount"`
	AppraisalFee          float64   `json:"appraisal_fee"`
	InterestRatePercent   float64   `json:"interest_rate_percent"`
	InsuranceRatePercent  float64   `json:"insurance_rate_percent"`
	StorageFee            float64   `json:"storage_fee"`
	FrequencyDays         int       `json:"frequency_days"`
	TermDays              int       `json:"term_days"`
	InterestAmount        float64   `json:"interest_amount"`
	InsuranceCost         float64   `json:"insurance_cost"`
	TotalCostOfBorrowing  float64   `json:"total_cost_of_borrowing"`
	ExtensionCost         float64   `json:"extension_cost"`
	TotalRedemptionAmount float64   `json:"total_redemption_amount"`
	TransactionDate       time.Time `json:"transaction_date"`
	DueDate               time.Time `json:"due_date"`
}

// PawnTicket is a pawn loan moving through its lifecycle.
// IssuedAt and Sequence are fixed when the first loan is made and carried into renewals.
type PawnTicket struct {
	Number    string        `json:"number,omitempty"`
	Sequence  int64         `json:"sequence,omitempty"`
	IssuedAt  time.Time     `json:"issued_at"`
	State     TicketState   `json:"state"`
	Terms     PawnLoanTerms `json:"terms"`
	ExpiresAt time.Time     `json:"expires_at"`
	Renewals  int           `json:"renewals"`
	ClosedAt  *time.Time    `json:"closed_at,omitempty"`
}
