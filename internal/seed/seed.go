package seed

import (
	"context"
	"errors"
	"time"

	"github.com/gosimple/slug"
	refdomain "github.com/smallbiznis/pawnshop/internal/reference/domain"
	"github.com/smallbiznis/pawnshop/pkg/db"
	"gorm.io/gorm"
)

const (
	defaultCurrency      = "USD"
	defaultGramsPerCarat = 0.2
)

type metalSeed struct {
	ID           int64
	Name         string
	PricePerGram float64
	Purities     []refdomain.Purity
	Estimates    map[string]float64
}

var defaultMetals = []metalSeed{
	{
		ID: 1, Name: "Gold", PricePerGram: 75.00,
		Purities: []refdomain.Purity{
			{ID: 11, Label: "10K", Value: 0.417},
			{ID: 12, Label: "14K", Value: 0.583},
			{ID: 13, Label: "18K", Value: 0.750},
			{ID: 14, Label: "22K", Value: 0.916},
			{ID: 15, Label: "24K", Value: 0.999},
		},
		Estimates: map[string]float64{"pawn": 60, "buy": 75, "retail": 120},
	},
	{
		ID: 2, Name: "Silver", PricePerGram: 0.95,
		Purities: []refdomain.Purity{
			{ID: 21, Label: "Sterling", Value: 0.925},
			{ID: 22, Label: "Fine", Value: 0.999},
		},
		Estimates: map[string]float64{"pawn": 50, "buy": 65, "retail": 150},
	},
	{
		ID: 3, Name: "Platinum", PricePerGram: 31.50,
		Purities: []refdomain.Purity{
			{ID: 31, Label: "900 Plat", Value: 0.900},
			{ID: 32, Label: "950 Plat", Value: 0.950},
		},
		Estimates: map[string]float64{"pawn": 55, "buy": 70, "retail": 125},
	},
	{
		ID: 4, Name: "Palladium", PricePerGram: 33.00,
		Purities: []refdomain.Purity{
			{ID: 41, Label: "950 Pall", Value: 0.950},
		},
		Estimates: map[string]float64{"pawn": 50, "buy": 65, "retail": 120},
	},
}

var defaultDiamondEstimates = []refdomain.DiamondEstimate{
	{ID: 1, TransactionType: "pawn", EstimatePercent: 20},
	{ID: 2, TransactionType: "buy", EstimatePercent: 30},
	{ID: 3, TransactionType: "retail", EstimatePercent: 100},
}

// AutoMigrate creates the reference tables on databases without SQL migrations.
func AutoMigrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("seed database handle is required")
	}
	return conn.AutoMigrate(
		&refdomain.MetalType{},
		&refdomain.Purity{},
		&refdomain.SpotPrice{},
		&refdomain.PriceEstimate{},
		&refdomain.DiamondEstimate{},
		&refdomain.CaratConversion{},
	)
}

// EnsureReferenceData inserts the default reference rows. Existing rows are left
// untouched, so operator edits survive a restart.
func EnsureReferenceData(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	sourceDate := time.Now().UTC().Truncate(24 * time.Hour)

	for _, m := range defaultMetals {
		if err := insertIgnoreDuplicate(ctx, conn, &refdomain.MetalType{
			ID:   m.ID,
			Code: slug.Make(m.Name),
			Name: m.Name,
		}); err != nil {
			return err
		}

		for _, p := range m.Purities {
			p.MetalTypeID = m.ID
			if err := insertIgnoreDuplicate(ctx, conn, &p); err != nil {
				return err
			}
		}

		if err := insertIgnoreDuplicate(ctx, conn, &refdomain.SpotPrice{
			MetalTypeID:  m.ID,
			PricePerGram: m.PricePerGram,
			Currency:     defaultCurrency,
			SourceDate:   sourceDate,
		}); err != nil {
			return err
		}

		for i, txType := range []string{"pawn", "buy", "retail"} {
			if err := insertIgnoreDuplicate(ctx, conn, &refdomain.PriceEstimate{
				ID:              m.ID*10 + int64(i) + 1,
				MetalTypeID:     m.ID,
				TransactionType: txType,
				EstimatePercent: m.Estimates[txType],
			}); err != nil {
				return err
			}
		}
	}

	for _, d := range defaultDiamondEstimates {
		if err := insertIgnoreDuplicate(ctx, conn, &d); err != nil {
			return err
		}
	}

	return insertIgnoreDuplicate(ctx, conn, &refdomain.CaratConversion{
		ID:            1,
		GramsPerCarat: defaultGramsPerCarat,
	})
}

func insertIgnoreDuplicate(ctx context.Context, conn *gorm.DB, row any) error {
	err := conn.WithContext(ctx).Create(row).Error
	if err != nil && !db.IsDuplicateKeyErr(err) {
		return err
	}
	return nil
}
