package pawn

import (
	"fmt"
	"time"

	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
)

// Policy is the store configuration tickets are opened and renewed under.
type Policy struct {
	Defaults       Defaults
	Closing        time.Duration
	NumberTemplate string
}

// DefaultPolicy closes at 18:00 and numbers tickets with DefaultTicketNumberTemplate.
func DefaultPolicy() Policy {
	return Policy{
		Defaults:       DefaultDefaults(),
		Closing:        18 * time.Hour,
		NumberTemplate: DefaultTicketNumberTemplate,
	}
}

// Open starts a ticket for the given terms. A positive seq numbers the ticket from
// the policy template; zero leaves it unnumbered, as for a quote.
func Open(terms domain.PawnLoanTerms, seq int64, p Policy) (domain.PawnTicket, error) {
	t := domain.PawnTicket{
		Sequence:  seq,
		IssuedAt:  terms.TransactionDate,
		State:     domain.TicketOpen,
		Terms:     terms,
		ExpiresAt: ExpiresAt(terms.DueDate, p.Closing),
	}
	if seq <= 0 {
		t.Sequence = 0
		return t, nil
	}
	number, err := FormatTicketNumber(p.NumberTemplate, RefOf(t))
	if err != nil {
		return domain.PawnTicket{}, err
	}
	t.Number = number
	return t, nil
}

// Redeem closes the ticket when the full redemption amount is paid before expiry.
func Redeem(t domain.PawnTicket, payment float64, at time.Time) (domain.PawnTicket, error) {
	if err := requireOpen(t, at); err != nil {
		return t, err
	}
	if payment < t.Terms.TotalRedemptionAmount {
		return t, domain.NewValidationError(domain.ErrInsufficientPayment,
			fmt.Sprintf("redemption requires %.2f, received %.2f", t.Terms.TotalRedemptionAmount, payment))
	}
	t.State = domain.TicketRedeemed
	closedAt := at
	t.ClosedAt = &closedAt
	return t, nil
}

// Extend marks the ticket extended and returns the renewed ticket. The renewal keeps
// the principal and rates, starts its term on the payment date and carries no
// appraisal fee. A numbered ticket is renumbered with its renewal count.
func Extend(t domain.PawnTicket, payment float64, at time.Time, p Policy) (extended, renewed domain.PawnTicket, err error) {
	if openErr := requireOpen(t, at); openErr != nil {
		return t, domain.PawnTicket{}, openErr
	}
	if payment < t.Terms.ExtensionCost {
		return t, domain.PawnTicket{}, domain.NewValidationError(domain.ErrInsufficientPayment,
			fmt.Sprintf("extension requires %.2f, received %.2f", t.Terms.ExtensionCost, payment))
	}

	prev := t.Terms
	terms := Compute(domain.PawnTermsInput{
		PrincipalAmount:      prev.PrincipalAmount,
		InterestRatePercent:  &prev.InterestRatePercent,
		InsuranceRatePercent: &prev.InsuranceRatePercent,
		StorageFee:           &prev.StorageFee,
		FrequencyDays:        &prev.FrequencyDays,
		TermDays:             &prev.TermDays,
		TransactionDate:      at,
	}, p.Defaults)

	renewed = domain.PawnTicket{
		Number:    t.Number,
		Sequence:  t.Sequence,
		IssuedAt:  t.IssuedAt,
		State:     domain.TicketOpen,
		Terms:     terms,
		ExpiresAt: ExpiresAt(terms.DueDate, p.Closing),
		Renewals:  t.Renewals + 1,
	}
	if renewed.Sequence > 0 {
		number, numErr := FormatTicketNumber(p.NumberTemplate, RefOf(renewed))
		if numErr != nil {
			return t, domain.PawnTicket{}, numErr
		}
		renewed.Number = number
	}

	extended = t
	extended.State = domain.TicketExtended
	closedAt := at
	extended.ClosedAt = &closedAt
	return extended, renewed, nil
}

// Forfeit moves an unredeemed ticket to the shop once its redemption option lapsed.
func Forfeit(t domain.PawnTicket, at time.Time) (domain.PawnTicket, error) {
	if t.State != domain.TicketOpen {
		return t, domain.NewValidationError(domain.ErrInvalidTicketTransition,
			fmt.Sprintf("cannot forfeit a %s ticket", t.State))
	}
	if !at.After(t.ExpiresAt) {
		return t, domain.NewValidationError(domain.ErrTicketNotExpired,
			"redemption period runs until "+t.ExpiresAt.Format(time.RFC3339))
	}
	t.State = domain.TicketForfeited
	closedAt := at
	t.ClosedAt = &closedAt
	return t, nil
}

// IsExpired reports whether an open ticket can no longer be redeemed or extended.
func IsExpired(t domain.PawnTicket, now time.Time) bool {
	return t.State == domain.TicketOpen && now.After(t.ExpiresAt)
}

func requireOpen(t domain.PawnTicket, at time.Time) error {
	if t.State != domain.TicketOpen {
		return domain.NewValidationError(domain.ErrInvalidTicketTransition,
			fmt.Sprintf("ticket is %s", t.State))
	}
	if at.After(t.ExpiresAt) {
		return domain.NewValidationError(domain.ErrTicketExpired,
			"redemption period ended "+t.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
