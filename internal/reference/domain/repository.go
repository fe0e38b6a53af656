package domain

import "context"

// Repository reads reference tables. Lookups of a single row return nil, nil when
// the row does not exist.
type Repository interface {
	ListMetalTypes(ctx context.Context) ([]MetalType, error)
	FindMetalTypeByCode(ctx context.Context, code string) (*MetalType, error)
	ListPuritiesByMetalType(ctx context.Context, metalTypeID int64) ([]Purity, error)
	FindPurity(ctx context.Context, id int64) (*Purity, error)
	FindSpotPrice(ctx context.Context, metalTypeID int64) (*SpotPrice, error)
	ListPriceEstimates(ctx context.Context) ([]PriceEstimate, error)
	ListDiamondEstimates(ctx context.Context) ([]DiamondEstimate, error)
	FindCaratConversion(ctx context.Context) (*CaratConversion, error)
}
