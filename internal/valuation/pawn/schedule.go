// Package pawn computes pawn loan fees, due dates and ticket lifecycle transitions.
package pawn

import (
	"time"

	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/smallbiznis/pawnshop/internal/valuation/estimate"
)

// Defaults fill in loan parameters the caller leaves unset.
type Defaults struct {
	InterestRatePercent  float64
	InsuranceRatePercent float64
	StorageFee           float64
	FrequencyDays        int
	TermDays             int
}

func DefaultDefaults() Defaults {
	return Defaults{
		InterestRatePercent:  2.9,
		InsuranceRatePercent: 1,
		StorageFee:           0,
		FrequencyDays:        30,
		TermDays:             62,
	}
}

func (d Defaults) withDefaults() Defaults {
	base := DefaultDefaults()
	if d.InterestRatePercent < 0 {
		d.InterestRatePercent = base.InterestRatePercent
	}
	if d.InsuranceRatePercent < 0 {
		d.InsuranceRatePercent = base.InsuranceRatePercent
	}
	if d.StorageFee < 0 {
		d.StorageFee = base.StorageFee
	}
	if d.FrequencyDays <= 0 {
		d.FrequencyDays = base.FrequencyDays
	}
	if d.TermDays <= 0 {
		d.TermDays = base.TermDays
	}
	return d
}

// Compute builds the fee schedule. Amounts are rounded to cents; totals are sums
// of the rounded components so the printed ticket always adds up.
func Compute(in domain.PawnTermsInput, defaults Defaults) domain.PawnLoanTerms {
	d := defaults.withDefaults()

	interestRate := floatOr(in.InterestRatePercent, d.InterestRatePercent)
	insuranceRate := floatOr(in.InsuranceRatePercent, d.InsuranceRatePercent)
	storageFee := estimate.Round2(nonNegative(floatOr(in.StorageFee, d.StorageFee)))
	frequencyDays := intOr(in.FrequencyDays, d.FrequencyDays)
	termDays := intOr(in.TermDays, d.TermDays)

	principal := estimate.Round2(nonNegative(in.PrincipalAmount))
	appraisalFee := estimate.Round2(nonNegative(in.AppraisalFee))

	interest := estimate.Round2(nonNegative(principal * interestRate / 100))
	insurance := estimate.Round2(nonNegative(principal * insuranceRate / 100))

	totalCost := estimate.Round2(appraisalFee + interest + insurance + storageFee)
	extension := estimate.Round2(interest + insurance + storageFee)

	return domain.PawnLoanTerms{
		PrincipalAmount:       principal,
		AppraisalFee:          appraisalFee,
		InterestRatePercent:   interestRate,
		InsuranceRatePercent:  insuranceRate,
		StorageFee:            storageFee,
		FrequencyDays:         frequencyDays,
		TermDays:              termDays,
		InterestAmount:        interest,
		InsuranceCost:         insurance,
		TotalCostOfBorrowing:  totalCost,
		ExtensionCost:         extension,
		TotalRedemptionAmount: estimate.Round2(principal + totalCost),
		TransactionDate:       in.TransactionDate,
		DueDate:               DueDate(in.TransactionDate, termDays),
	}
}

// DueDate adds termDays calendar days to the transaction date.
func DueDate(transactionDate time.Time, termDays int) time.Time {
	return transactionDate.AddDate(0, 0, termDays)
}

// ExpiresAt is the instant the redemption option lapses: store closing time on the
// due date, in the due date's location.
func ExpiresAt(dueDate time.Time, closing time.Duration) time.Time {
	y, m, d := dueDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, dueDate.Location()).Add(closing)
}

func floatOr(v *float64, def float64) float64 {
	if v == nil || *v < 0 {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil || *v <= 0 {
		return def
	}
	return *v
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
