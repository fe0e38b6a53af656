// Package gem turns operator-entered diamond and stone values into the totals
// the estimate projector works on.
package gem

import (
	"strings"

	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/smallbiznis/pawnshop/internal/valuation/format"
	"github.com/smallbiznis/pawnshop/internal/valuation/estimate"
)

// TotalValue is the value the gem contributes to the item. A stone valued
// "each" is multiplied by its quantity; stones valued "total" and diamonds are
// taken as entered.
func TotalValue(g domain.Gem) float64 {
	if g == nil || g.EnteredValue() <= 0 {
		return 0
	}
	if s, ok := g.(domain.Stone); ok && s.Valuation == domain.ValuationEach {
		return g.EnteredValue() * float64(quantity(s.Quantity))
	}
	return g.EnteredValue()
}

// Project returns the gem's estimate bundle from the global gem table.
func Project(g domain.Gem, table domain.EstimateTable) domain.PriceEstimateBundle {
	return estimate.ProjectGem(TotalValue(g), table)
}

// Classify converts a form record into a Diamond or Stone.
//
// In strict mode the category must be "diamond" or "stone". Otherwise the legacy
// rule applies: a record is a diamond when its category says so or when it
// carries a diamond shape, and anything else is a stone. That rule can
// misclassify a stone record that happens to carry a diamond shape.
func Classify(raw domain.RawGem, strict bool) (domain.Gem, error) {
	category := domain.GemCategory(strings.ToLower(strings.TrimSpace(raw.Category)))
	if strict {
		switch category {
		case domain.CategoryDiamond:
			return toDiamond(raw), nil
		case domain.CategoryStone:
			return toStone(raw), nil
		default:
			return nil, domain.ErrUnknownGemCategory
		}
	}

	if category == domain.CategoryDiamond || strings.TrimSpace(raw.DiamondShape) != "" {
		return toDiamond(raw), nil
	}
	return toStone(raw), nil
}

// Describe returns the token used for the gem in line item descriptions,
// e.g. "Round Diamond" or "Ruby".
func Describe(g domain.Gem) string {
	switch v := g.(type) {
	case domain.Diamond:
		label := "Diamond"
		if v.LabGrown {
			label = "Lab-Grown Diamond"
		}
		return join(format.Title(v.Shape), label)
	case domain.Stone:
		name := format.Title(v.Type)
		if name == "" {
			name = "Stone"
		}
		if !v.Authentic {
			name = join("Simulated", name)
		}
		return name
	default:
		return ""
	}
}

func toDiamond(raw domain.RawGem) domain.Diamond {
	shape := strings.TrimSpace(raw.DiamondShape)
	if shape == "" {
		shape = strings.TrimSpace(raw.Shape)
	}
	return domain.Diamond{
		Shape:          shape,
		Clarity:        strings.TrimSpace(raw.Clarity),
		Color:          strings.TrimSpace(raw.Color),
		ExactColor:     strings.ToUpper(strings.TrimSpace(raw.ExactColor)),
		Cut:            strings.TrimSpace(raw.Cut),
		LabGrown:       raw.LabGrown,
		WeightCarats:   raw.WeightCarats,
		Quantity:       quantity(raw.Quantity),
		Size:           strings.TrimSpace(raw.Size),
		EstimatedValue: raw.EstimatedValue,
	}
}

func toStone(raw domain.RawGem) domain.Stone {
	valuation := raw.ValuationType
	if valuation != domain.ValuationEach {
		valuation = domain.ValuationTotal
	}
	return domain.Stone{
		Type:           strings.TrimSpace(raw.Type),
		Shape:          strings.TrimSpace(raw.Shape),
		Color:          strings.TrimSpace(raw.Color),
		ColorID:        raw.ColorID,
		WeightCarats:   raw.WeightCarats,
		Width:          raw.Width,
		Depth:          raw.Depth,
		Quantity:       quantity(raw.Quantity),
		Authentic:      raw.Authentic,
		Valuation:      valuation,
		EstimatedValue: raw.EstimatedValue,
	}
}

func quantity(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}

func join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
