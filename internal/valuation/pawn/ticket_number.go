package pawn

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
)

// DefaultTicketNumberTemplate numbers tickets per issue day. Renewals append -R<n>.
const DefaultTicketNumberTemplate = "PT-{YYYY}{MM}{DD}-{SEQ6}{REN}"

const maxSequenceWidth = 18

// TicketRef identifies a ticket for numbering. IssuedAt is the date of the first
// loan and stays fixed across renewals.
type TicketRef struct {
	IssuedAt time.Time
	Sequence int64
	Renewals int
}

// RefOf returns the numbering reference of an issued ticket.
func RefOf(t domain.PawnTicket) TicketRef {
	return TicketRef{IssuedAt: t.IssuedAt, Sequence: t.Sequence, Renewals: t.Renewals}
}

// FormatTicketNumber renders template for ref.
//
// Tokens: {YYYY} {YY} {MM} {DD} of the issue date, {SEQ} and zero padded {SEQn}
// of the sequence, {REN} which is empty on a first loan and -R<n> on the n-th renewal.
func FormatTicketNumber(template string, ref TicketRef) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", fmt.Errorf("%w: template is empty", domain.ErrInvalidTicketTemplate)
	}
	if ref.Sequence <= 0 {
		return "", fmt.Errorf("%w: sequence must be positive, got %d", domain.ErrInvalidTicketTemplate, ref.Sequence)
	}

	var b strings.Builder
	rest := template
	for rest != "" {
		open := strings.IndexAny(rest, "{}")
		if open < 0 {
			b.WriteString(rest)
			break
		}
		if rest[open] == '}' {
			return "", fmt.Errorf("%w: stray } in %q", domain.ErrInvalidTicketTemplate, template)
		}
		b.WriteString(rest[:open])

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated token in %q", domain.ErrInvalidTicketTemplate, template)
		}
		token := rest[open+1 : open+end]
		value, ok := ref.token(token)
		if !ok {
			return "", fmt.Errorf("%w: unknown token {%s}", domain.ErrInvalidTicketTemplate, token)
		}
		b.WriteString(value)
		rest = rest[open+end+1:]
	}
	return b.String(), nil
}

// ValidateTicketNumberTemplate checks that template only uses known tokens.
func ValidateTicketNumberTemplate(template string) error {
	_, err := FormatTicketNumber(template, TicketRef{IssuedAt: time.Unix(0, 0).UTC(), Sequence: 1})
	return err
}

func (r TicketRef) token(name string) (string, bool) {
	switch name {
	case "YYYY":
		return r.IssuedAt.Format("2006"), true
	case "YY":
		return r.IssuedAt.Format("06"), true
	case "MM":
		return r.IssuedAt.Format("01"), true
	case "DD":
		return r.IssuedAt.Format("02"), true
	case "SEQ":
		return strconv.FormatInt(r.Sequence, 10), true
	case "REN":
		if r.Renewals <= 0 {
			return "", true
		}
		return "-R" + strconv.Itoa(r.Renewals), true
	}

	width, ok := strings.CutPrefix(name, "SEQ")
	if !ok {
		return "", false
	}
	n, err := strconv.Atoi(width)
	if err != nil || n <= 0 || n > maxSequenceWidth {
		return "", false
	}
	return fmt.Sprintf("%0*d", n, r.Sequence), true
}
