package estimate

import "github.com/smallbiznis/pawnshop/internal/valuation/domain"

// AccumulationPolicy decides how a freshly projected bundle combines with the
// bundle already held for a slot.
type AccumulationPolicy int

const (
	// Replace discards the previous bundle. Used for the metal slot.
	Replace AccumulationPolicy = iota
	// Additive sums field by field. Used for secondary gems.
	Additive
)

func (p AccumulationPolicy) Apply(current, next domain.PriceEstimateBundle) domain.PriceEstimateBundle {
	switch p {
	case Additive:
		return current.Add(next)
	default:
		return next
	}
}

func (p AccumulationPolicy) String() string {
	switch p {
	case Additive:
		return "additive"
	default:
		return "replace"
	}
}
