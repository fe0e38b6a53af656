package pawn

import (
	"testing"
	"time"

	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTicket(t *testing.T) domain.PawnTicket {
	t.Helper()
	terms := Compute(domain.PawnTermsInput{
		PrincipalAmount: 500,
		AppraisalFee:    20,
		TransactionDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, DefaultDefaults())
	ticket, err := Open(terms, 1, DefaultPolicy())
	require.NoError(t, err)
	return ticket
}

func TestOpen(t *testing.T) {
	ticket := openTicket(t)

	assert.Equal(t, "PT-20240101-000001", ticket.Number)
	assert.Equal(t, int64(1), ticket.Sequence)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ticket.IssuedAt)
	assert.Equal(t, domain.TicketOpen, ticket.State)
	assert.Equal(t, time.Date(2024, 3, 3, 18, 0, 0, 0, time.UTC), ticket.ExpiresAt)
}

func TestOpen_WithoutSequenceIsUnnumbered(t *testing.T) {
	terms := Compute(domain.PawnTermsInput{PrincipalAmount: 100}, DefaultDefaults())

	ticket, err := Open(terms, 0, DefaultPolicy())
	require.NoError(t, err)
	assert.Empty(t, ticket.Number)
	assert.Zero(t, ticket.Sequence)
}

func TestOpen_BadTemplate(t *testing.T) {
	terms := Compute(domain.PawnTermsInput{PrincipalAmount: 100}, DefaultDefaults())
	policy := DefaultPolicy()
	policy.NumberTemplate = "PT-{BRANCH}"

	_, err := Open(terms, 3, policy)
	assert.ErrorIs(t, err, domain.ErrInvalidTicketTemplate)
}

func TestRedeem(t *testing.T) {
	ticket := openTicket(t)
	at := time.Date(2024, 3, 3, 17, 59, 0, 0, time.UTC)

	_, err := Redeem(ticket, 500, at)
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)
	assert.True(t, domain.IsValidation(err))

	redeemed, err := Redeem(ticket, 539.50, at)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketRedeemed, redeemed.State)
	require.NotNil(t, redeemed.ClosedAt)

	_, err = Redeem(redeemed, 539.50, at)
	assert.ErrorIs(t, err, domain.ErrInvalidTicketTransition)
}

func TestRedeem_AfterClosingOnDueDateFails(t *testing.T) {
	ticket := openTicket(t)

	_, err := Redeem(ticket, 1000, time.Date(2024, 3, 3, 18, 1, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrTicketExpired)
}

func TestExtend_StartsNewTerm(t *testing.T) {
	ticket := openTicket(t)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, _, err := Extend(ticket, 10, at, DefaultPolicy())
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)

	extended, renewed, err := Extend(ticket, 19.50, at, DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, domain.TicketExtended, extended.State)
	assert.Equal(t, ticket.Number, extended.Number)
	assert.Equal(t, domain.TicketOpen, renewed.State)
	assert.Equal(t, 1, renewed.Renewals)
	assert.Equal(t, "PT-20240101-000001-R1", renewed.Number)
	assert.Equal(t, ticket.IssuedAt, renewed.IssuedAt)
	assert.Equal(t, 500.0, renewed.Terms.PrincipalAmount)
	assert.Equal(t, 0.0, renewed.Terms.AppraisalFee)
	assert.Equal(t, time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC), renewed.Terms.DueDate)
	assert.Equal(t, time.Date(2024, 5, 2, 18, 0, 0, 0, time.UTC), renewed.ExpiresAt)

	_, again, err := Extend(renewed, 19.50, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, 2, again.Renewals)
	assert.Equal(t, "PT-20240101-000001-R2", again.Number)
}

func TestExtend_KeepsTicketRatesUnderStorePolicy(t *testing.T) {
	ticket := openTicket(t)
	policy := Policy{
		Defaults: Defaults{
			InterestRatePercent:  9,
			InsuranceRatePercent: 4,
			StorageFee:           3,
			FrequencyDays:        10,
			TermDays:             20,
		},
		Closing:        17*time.Hour + 30*time.Minute,
		NumberTemplate: "{SEQ4}{REN}",
	}

	_, renewed, err := Extend(ticket, 19.50, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), policy)
	require.NoError(t, err)

	assert.Equal(t, 2.9, renewed.Terms.InterestRatePercent)
	assert.Equal(t, 1.0, renewed.Terms.InsuranceRatePercent)
	assert.Equal(t, 62, renewed.Terms.TermDays)
	assert.Equal(t, "0001-R1", renewed.Number)
	assert.Equal(t, time.Date(2024, 5, 2, 17, 30, 0, 0, time.UTC), renewed.ExpiresAt)
}

func TestExtend_UnnumberedTicketStaysUnnumbered(t *testing.T) {
	terms := Compute(domain.PawnTermsInput{
		PrincipalAmount: 500,
		TransactionDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, DefaultDefaults())
	ticket, err := Open(terms, 0, DefaultPolicy())
	require.NoError(t, err)

	_, renewed, err := Extend(ticket, 19.50, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), DefaultPolicy())
	require.NoError(t, err)
	assert.Empty(t, renewed.Number)
	assert.Equal(t, 1, renewed.Renewals)
}

func TestForfeit(t *testing.T) {
	ticket := openTicket(t)

	_, err := Forfeit(ticket, time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrTicketNotExpired)

	after := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	assert.True(t, IsExpired(ticket, after))

	forfeited, err := Forfeit(ticket, after)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketForfeited, forfeited.State)
	assert.False(t, IsExpired(forfeited, after))

	_, err = Redeem(forfeited, 1000, after)
	assert.ErrorIs(t, err, domain.ErrInvalidTicketTransition)
}
