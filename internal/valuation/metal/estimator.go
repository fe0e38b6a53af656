// Package metal converts weight, purity and spot price into a metal value and
// keeps the operator's manual edits sticky until one of those inputs changes.
package metal

import "github.com/smallbiznis/pawnshop/internal/valuation/domain"

// EstimateValue returns weight × purity × spot price. Missing, zero or negative
// inputs yield 0.
func EstimateValue(weightGrams, purity, spotPricePerGram float64) float64 {
	if weightGrams <= 0 || purity <= 0 || spotPricePerGram <= 0 {
		return 0
	}
	return weightGrams * purity * spotPricePerGram
}

// New returns an appraisal in auto mode with its value derived from the inputs.
func New(a domain.MetalAppraisal) domain.MetalAppraisal {
	a.Mode = domain.ValueAuto
	return recompute(a)
}

// Recompute refreshes the derived value. A manual override is left untouched.
func Recompute(a domain.MetalAppraisal) domain.MetalAppraisal {
	if a.Mode == domain.ValueManualOverride {
		return a
	}
	return recompute(a)
}

// SetManualValue records an operator edit of the value field.
func SetManualValue(a domain.MetalAppraisal, value float64) domain.MetalAppraisal {
	if value < 0 {
		value = 0
	}
	a.EstimatedValue = value
	a.Mode = domain.ValueManualOverride
	return a
}

func SetWeight(a domain.MetalAppraisal, weightGrams float64) domain.MetalAppraisal {
	if a.WeightGrams == weightGrams {
		return Recompute(a)
	}
	a.WeightGrams = weightGrams
	return rearm(a)
}

func SetPurity(a domain.MetalAppraisal, purity domain.Purity) domain.MetalAppraisal {
	if a.Purity == purity {
		return Recompute(a)
	}
	a.Purity = purity
	return rearm(a)
}

func SetSpotPrice(a domain.MetalAppraisal, spotPricePerGram float64) domain.MetalAppraisal {
	if a.SpotPricePerGram == spotPricePerGram {
		return Recompute(a)
	}
	a.SpotPricePerGram = spotPricePerGram
	return rearm(a)
}

// SwitchMetalType clears the purity selection and re-seeds the spot price for the
// new metal. The caller is expected to load the purity table for metalTypeID.
func SwitchMetalType(a domain.MetalAppraisal, metalTypeID int64, metalType domain.PreciousMetalType, spotPricePerGram float64) domain.MetalAppraisal {
	if a.MetalTypeID == metalTypeID && a.PreciousMetalType == metalType {
		return a
	}
	a.MetalTypeID = metalTypeID
	a.PreciousMetalType = metalType
	a.Purity = domain.Purity{}
	a.SpotPricePerGram = spotPricePerGram
	if metalType != domain.Gold {
		a.JewelryColor = ""
	}
	return rearm(a)
}

func rearm(a domain.MetalAppraisal) domain.MetalAppraisal {
	a.Mode = domain.ValueAuto
	return recompute(a)
}

func recompute(a domain.MetalAppraisal) domain.MetalAppraisal {
	a.EstimatedValue = EstimateValue(a.WeightGrams, a.Purity.Value, a.SpotPricePerGram)
	return a
}
