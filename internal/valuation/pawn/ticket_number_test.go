package pawn

import (
	"testing"
	"time"

	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTicketNumber(t *testing.T) {
	issuedAt := time.Date(2024, 1, 5, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		template string
		ref      TicketRef
		want     string
	}{
		{"default first loan", DefaultTicketNumberTemplate, TicketRef{IssuedAt: issuedAt, Sequence: 42}, "PT-20240105-000042"},
		{"default second renewal", DefaultTicketNumberTemplate, TicketRef{IssuedAt: issuedAt, Sequence: 42, Renewals: 2}, "PT-20240105-000042-R2"},
		{"short year unpadded", "{YY}{MM}-{SEQ}", TicketRef{IssuedAt: issuedAt, Sequence: 7}, "2401-7"},
		{"sequence wider than padding", "{SEQ2}", TicketRef{IssuedAt: issuedAt, Sequence: 1234}, "1234"},
		{"no tokens", "TICKET", TicketRef{IssuedAt: issuedAt, Sequence: 1}, "TICKET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatTicketNumber(tt.template, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatTicketNumber_RejectsBadInput(t *testing.T) {
	issuedAt := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		template string
		seq      int64
	}{
		"empty template":      {"", 1},
		"zero sequence":       {DefaultTicketNumberTemplate, 0},
		"unknown token":       {"PT-{STORE}-{SEQ}", 1},
		"unterminated token":  {"PT-{SEQ", 1},
		"stray closing brace": {"PT-}{SEQ}", 1},
		"zero width":          {"PT-{SEQ0}", 1},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FormatTicketNumber(tt.template, TicketRef{IssuedAt: issuedAt, Sequence: tt.seq})
			assert.ErrorIs(t, err, domain.ErrInvalidTicketTemplate)
		})
	}
}

func TestValidateTicketNumberTemplate(t *testing.T) {
	assert.NoError(t, ValidateTicketNumberTemplate(DefaultTicketNumberTemplate))
	assert.ErrorIs(t, ValidateTicketNumberTemplate("{DUE}-{SEQ}"), domain.ErrInvalidTicketTemplate)
}
