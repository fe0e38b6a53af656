package lineitem

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/smallbiznis/pawnshop/internal/valuation/format"
	"github.com/smallbiznis/pawnshop/internal/valuation/estimate"
	"github.com/smallbiznis/pawnshop/internal/valuation/gem"
)

// FinishOptions control how a session is turned into a line item.
type FinishOptions struct {
	ID                   snowflake.ID
	Now                  time.Time
	ConvertCaratsToGrams bool
	GramsPerCarat        float64
}

// Finish freezes the session into a JewelryLineItem.
func (s Session) Finish(opts FinishOptions) (domain.JewelryLineItem, error) {
	if s.IsEmpty() {
		return domain.JewelryLineItem{}, domain.ErrEmptySession
	}

	item := domain.JewelryLineItem{
		ID:             opts.ID,
		Metal:          s.Metal(),
		MetalEstimate:  s.metalEstimate,
		Primary:        s.PrimaryGem(),
		Secondary:      s.SecondaryGems(),
		GemEstimate:    round(s.GemEstimate()),
		PriceEstimates: round(s.Estimate()),
		LongDesc:       s.LongDescription(),
		ShortDesc:      s.ShortDescription(),
		CreatedAt:      opts.Now,
	}
	if item.Secondary == nil {
		item.Secondary = []domain.GemEntry{}
	}
	if opts.ConvertCaratsToGrams && opts.GramsPerCarat > 0 {
		w := s.TotalWeightGrams(opts.GramsPerCarat)
		item.TotalWeightGrams = &w
	}
	return item, nil
}

// TotalWeightGrams is the metal weight plus every gem's carats × quantity
// converted with gramsPerCarat.
func (s Session) TotalWeightGrams(gramsPerCarat float64) float64 {
	var carats float64
	if s.primary != nil {
		carats += gemCarats(s.primary.Gem)
	}
	for _, e := range s.secondary {
		carats += gemCarats(e.Gem)
	}
	var metalGrams float64
	if s.metal != nil && s.metal.WeightGrams > 0 {
		metalGrams = s.metal.WeightGrams
	}
	return metalGrams + carats*gramsPerCarat
}

// LongDescription renders e.g.
// "5.2g 14K Yellow Gold Ring, 0.5ct Round Diamond, with 2 secondary gems".
func (s Session) LongDescription() string {
	parts := []string{}
	if s.metal != nil {
		parts = appendNonEmpty(parts, joinWords(
			formatGrams(s.metal.WeightGrams),
			s.metal.Purity.Label,
			format.Title(s.metal.JewelryColor),
			metalName(*s.metal),
			format.Title(s.metal.Category),
		))
	}
	if s.primary != nil {
		parts = appendNonEmpty(parts, joinWords(formatCarats(s.primary.Gem.Carats()), gem.Describe(s.primary.Gem)))
	}
	if n := len(s.secondary); n > 0 {
		parts = append(parts, "with "+secondaryCount(n))
	}
	return strings.Join(parts, ", ")
}

// ShortDescription renders e.g. "14K Gold Ring, Round Diamond +2".
func (s Session) ShortDescription() string {
	parts := []string{}
	if s.metal != nil {
		parts = appendNonEmpty(parts, joinWords(s.metal.Purity.Label, metalName(*s.metal), format.Title(s.metal.Category)))
	}
	if s.primary != nil {
		parts = appendNonEmpty(parts, gem.Describe(s.primary.Gem))
	}
	out := strings.Join(parts, ", ")
	if n := len(s.secondary); n > 0 {
		if out == "" {
			return secondaryCount(n)
		}
		out += fmt.Sprintf(" +%d", n)
	}
	return out
}

func gemCarats(g domain.Gem) float64 {
	if g == nil || g.Carats() <= 0 {
		return 0
	}
	qty := g.Count()
	if qty <= 0 {
		qty = 1
	}
	return g.Carats() * float64(qty)
}

func metalName(a domain.MetalAppraisal) string {
	if a.PreciousMetalType != "" {
		return format.Title(string(a.PreciousMetalType))
	}
	return format.Title(a.NonPreciousMetalType)
}

func secondaryCount(n int) string {
	if n == 1 {
		return "1 secondary gem"
	}
	return fmt.Sprintf("%d secondary gems", n)
}

func formatGrams(w float64) string {
	if w <= 0 {
		return ""
	}
	return strconv.FormatFloat(estimate.Round2(w), 'f', -1, 64) + "g"
}

func formatCarats(c float64) string {
	if c <= 0 {
		return ""
	}
	return strconv.FormatFloat(estimate.Round2(c), 'f', -1, 64) + "ct"
}

func round(b domain.PriceEstimateBundle) domain.PriceEstimateBundle {
	return domain.PriceEstimateBundle{
		Pawn:   estimate.Round2(b.Pawn),
		Buy:    estimate.Round2(b.Buy),
		Melt:   estimate.Round2(b.Melt),
		Retail: estimate.Round2(b.Retail),
	}
}

func joinWords(words ...string) string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

func appendNonEmpty(parts []string, s string) []string {
	if s == "" {
		return parts
	}
	return append(parts, s)
}
