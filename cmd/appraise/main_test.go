package main

import (
	"context"
	"testing"

	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceStub struct {
	domain.Service
	quoted domain.PawnQuoteRequest
}

func (s *serviceStub) QuotePawn(_ context.Context, req domain.PawnQuoteRequest) (*domain.PawnQuoteResponse, error) {
	s.quoted = req
	return &domain.PawnQuoteResponse{Ticket: domain.PawnTicket{Number: "PT-1", State: domain.TicketOpen}}, nil
}

func TestRun_DecodesRequestForKind(t *testing.T) {
	stub := &serviceStub{}

	out, err := run(context.Background(), stub, "pawn", []byte(`{"principal_amount": 500, "sequence": 7}`))
	require.NoError(t, err)

	assert.Equal(t, 500.0, stub.quoted.PrincipalAmount)
	assert.Equal(t, int64(7), stub.quoted.Sequence)
	resp, ok := out.(*domain.PawnQuoteResponse)
	require.True(t, ok)
	assert.Equal(t, "PT-1", resp.Ticket.Number)
}

func TestRun_Errors(t *testing.T) {
	stub := &serviceStub{}

	_, err := run(context.Background(), stub, "valuate", []byte(`{}`))
	assert.ErrorContains(t, err, "unknown request kind")

	_, err = run(context.Background(), stub, "pawn", []byte(`{not json`))
	assert.ErrorContains(t, err, "decode request")
}
