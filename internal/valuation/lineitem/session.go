// Package lineitem combines a metal appraisal and its gems into a single
// jewelry line item. Sessions are values: every reducer returns a new Session and
// leaves its receiver untouched.
package lineitem

import (
	"fmt"
	"slices"

	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/smallbiznis/pawnshop/internal/valuation/estimate"
)

const (
	metalPolicy     = estimate.Replace
	secondaryPolicy = estimate.Additive
)

// Session is an in-progress appraisal of one jewelry item.
type Session struct {
	metal             *domain.MetalAppraisal
	metalEstimate     domain.PriceEstimateBundle
	primary           *domain.GemEntry
	secondary         []domain.GemEntry
	secondaryEstimate domain.PriceEstimateBundle
}

func NewSession() Session {
	return Session{}
}

// WithMetal sets the metal appraisal. Its bundle replaces any previous metal bundle.
func (s Session) WithMetal(a domain.MetalAppraisal, est domain.PriceEstimateBundle) Session {
	metal := a
	s.metal = &metal
	s.metalEstimate = metalPolicy.Apply(s.metalEstimate, est)
	return s
}

func (s Session) WithoutMetal() Session {
	s.metal = nil
	s.metalEstimate = domain.PriceEstimateBundle{}
	return s
}

// AddPrimaryGem sets the primary gem. A session holds at most one primary gem:
// while one exists the call is rejected with a ValidationError and the
// original session is returned.
func (s Session) AddPrimaryGem(g domain.Gem, est domain.PriceEstimateBundle) (Session, error) {
	if g == nil {
		return s, domain.ErrGemNotFound
	}
	if s.primary != nil {
		existing := s.primary.Gem.Category()
		if existing != g.Category() {
			return s, domain.NewValidationError(domain.ErrPrimaryGemCategory,
				fmt.Sprintf("a primary %s is already set; delete it before adding a primary %s", existing, g.Category()))
		}
		return s, domain.NewValidationError(domain.ErrPrimaryGemExists,
			fmt.Sprintf("a primary %s is already set; delete it before adding another", existing))
	}
	s.primary = &domain.GemEntry{Role: domain.RolePrimary, Gem: g, Estimate: est}
	return s, nil
}

func (s Session) RemovePrimaryGem() Session {
	s.primary = nil
	return s
}

// AddSecondaryGem appends a secondary gem. Secondary gems are unlimited and may mix
// diamonds and stones; their bundles accumulate.
func (s Session) AddSecondaryGem(g domain.Gem, est domain.PriceEstimateBundle) Session {
	if g == nil {
		return s
	}
	s.secondary = append(slices.Clone(s.secondary), domain.GemEntry{Role: domain.RoleSecondary, Gem: g, Estimate: est})
	s.secondaryEstimate = secondaryPolicy.Apply(s.secondaryEstimate, est)
	return s
}

// RemoveSecondaryGem drops the secondary gem at index and subtracts its bundle.
func (s Session) RemoveSecondaryGem(index int) (Session, error) {
	if index < 0 || index >= len(s.secondary) {
		return s, domain.ErrGemNotFound
	}
	removed := s.secondary[index]
	s.secondary = slices.Delete(slices.Clone(s.secondary), index, index+1)
	s.secondaryEstimate = s.secondaryEstimate.Sub(removed.Estimate)
	if len(s.secondary) == 0 {
		s.secondaryEstimate = domain.PriceEstimateBundle{}
	}
	return s, nil
}

func (s Session) Metal() *domain.MetalAppraisal {
	if s.metal == nil {
		return nil
	}
	m := *s.metal
	return &m
}

func (s Session) PrimaryGem() *domain.GemEntry {
	if s.primary == nil {
		return nil
	}
	p := *s.primary
	return &p
}

func (s Session) SecondaryGems() []domain.GemEntry {
	return slices.Clone(s.secondary)
}

func (s Session) MetalEstimate() domain.PriceEstimateBundle {
	return s.metalEstimate
}

// GemEstimate is the primary bundle plus the accumulated secondary bundles.
func (s Session) GemEstimate() domain.PriceEstimateBundle {
	out := s.secondaryEstimate
	if s.primary != nil {
		out = out.Add(s.primary.Estimate)
	}
	return out
}

// Estimate is the overall line item bundle: metal plus every gem.
func (s Session) Estimate() domain.PriceEstimateBundle {
	return s.metalEstimate.Add(s.GemEstimate())
}

func (s Session) IsEmpty() bool {
	return s.metal == nil && s.primary == nil && len(s.secondary) == 0
}
