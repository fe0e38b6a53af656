package reference

import (
	"context"
	"errors"
	"strings"

	"github.com/smallbiznis/pawnshop/internal/reference/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListMetalTypes(ctx context.Context) ([]domain.MetalType, error) {
	var items []domain.MetalType
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindMetalTypeByCode(ctx context.Context, code string) (*domain.MetalType, error) {
	var item domain.MetalType
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.TrimSpace(code)).
		First(&item).Error
	return firstOrNil(&item, err)
}

func (r *repository) ListPuritiesByMetalType(ctx context.Context, metalTypeID int64) ([]domain.Purity, error) {
	var items []domain.Purity
	err := r.db.WithContext(ctx).
		Where("metal_type_id = ?", metalTypeID).
		Order("value").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindPurity(ctx context.Context, id int64) (*domain.Purity, error) {
	var item domain.Purity
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error
	return firstOrNil(&item, err)
}

func (r *repository) FindSpotPrice(ctx context.Context, metalTypeID int64) (*domain.SpotPrice, error) {
	var item domain.SpotPrice
	err := r.db.WithContext(ctx).
		Where("metal_type_id = ?", metalTypeID).
		First(&item).Error
	return firstOrNil(&item, err)
}

func (r *repository) ListPriceEstimates(ctx context.Context) ([]domain.PriceEstimate, error) {
	var items []domain.PriceEstimate
	err := r.db.WithContext(ctx).
		Order("metal_type_id, transaction_type").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListDiamondEstimates(ctx context.Context) ([]domain.DiamondEstimate, error) {
	var items []domain.DiamondEstimate
	err := r.db.WithContext(ctx).
		Order("transaction_type").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindCaratConversion(ctx context.Context) (*domain.CaratConversion, error) {
	var item domain.CaratConversion
	err := r.db.WithContext(ctx).
		Order("id").
		First(&item).Error
	return firstOrNil(&item, err)
}

func firstOrNil[T any](item *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}
