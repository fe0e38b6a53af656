// Package domain holds the reference tables the valuation engine reads:
// metal types, purities, spot prices, estimate percentages and the carat factor.
package domain

import "time"

type MetalType struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (MetalType) TableName() string { return "metal_types" }

type Purity struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	MetalTypeID int64     `json:"metal_type_id" gorm:"column:metal_type_id;not null;index"`
	Label       string    `json:"label" gorm:"type:text;not null"`
	Value       float64   `json:"value" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Purity) TableName() string { return "purities" }

type SpotPrice struct {
	MetalTypeID  int64     `json:"metal_type_id" gorm:"column:metal_type_id;primaryKey"`
	PricePerGram float64   `json:"price_per_gram" gorm:"not null"`
	Currency     string    `json:"currency" gorm:"type:char(3);not null"`
	SourceDate   time.Time `json:"source_date" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (SpotPrice) TableName() string { return "spot_prices" }

type PriceEstimate struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	MetalTypeID     int64     `json:"metal_type_id" gorm:"column:metal_type_id;not null;index;uniqueIndex:ux_price_estimates_metal_type_transaction,priority:1"`
	TransactionType string    `json:"transaction_type" gorm:"type:text;not null;uniqueIndex:ux_price_estimates_metal_type_transaction,priority:2"`
	EstimatePercent float64   `json:"estimate_percent" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PriceEstimate) TableName() string { return "price_estimates" }

type DiamondEstimate struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	TransactionType string    `json:"transaction_type" gorm:"type:text;not null;uniqueIndex"`
	EstimatePercent float64   `json:"estimate_percent" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DiamondEstimate) TableName() string { return "diamond_estimates" }

type CaratConversion struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	GramsPerCarat float64   `json:"grams_per_carat" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (CaratConversion) TableName() string { return "carat_conversions" }
