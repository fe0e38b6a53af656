package domain

type GemCategory string

var (
	CategoryDiamond GemCategory = "diamond"
	CategoryStone   GemCategory = "stone"
)

type GemRole string

var (
	RolePrimary   GemRole = "primary"
	RoleSecondary GemRole = "secondary"
)

type ValuationType string

var (
	ValuationEach  ValuationType = "each"
	ValuationTotal ValuationType = "total"
)

// Gem is either a Diamond or a Stone.
type Gem interface {
	Category() GemCategory
	// EnteredValue is the operator-entered estimated value.
	EnteredValue() float64
	Carats() float64
	Count() int
	isGem()
}

type Diamond struct {
	Shape          string  `json:"shape"`
	Clarity        string  `json:"clarity"`
	Color          string  `json:"color"`
	ExactColor     string  `json:"exact_color"`
	Cut            string  `json:"cut"`
	LabGrown       bool    `json:"lab_grown"`
	WeightCarats   float64 `json:"weight_carats"`
	Quantity       int     `json:"quantity"`
	Size           string  `json:"size"`
	EstimatedValue float64 `json:"estimated_value"`
}

func (Diamond) Category() GemCategory { return CategoryDiamond }
func (d Diamond) EnteredValue() float64 { return d.EstimatedValue }
func (d Diamond) Carats() float64 { return d.WeightCarats }
func (d Diamond) Count() int { return d.Quantity }
func (Diamond) isGem() {}

type Stone struct {
	Type           string        `json:"type"`
	Shape          string        `json:"shape"`
	Color          string        `json:"color"`
	ColorID        int64         `json:"color_id"`
	WeightCarats   float64       `json:"weight_carats"`
	Width          float64       `json:"width"`
	Depth          float64       `json:"depth"`
	Quantity       int           `json:"quantity"`
	Authentic      bool          `json:"authentic"`
	Valuation      ValuationType `json:"valuation_type"`
	EstimatedValue float64       `json:"estimated_value"`
}

func (Stone) Category() GemCategory { return CategoryStone }
func (s Stone) EnteredValue() float64 { return s.EstimatedValue }
func (s Stone) Carats() float64 { return s.WeightCarats }
func (s Stone) Count() int { return s.Quantity }
func (Stone) isGem() {}

// GemEntry binds a gem to its role on a jewelry item together with its projected estimates.
type GemEntry struct {
	Role     GemRole             `json:"role"`
	Gem      Gem                 `json:"gem"`
	Estimate PriceEstimateBundle `json:"estimate"`
}

// RawGem is a loosely typed gem record as captured by the appraisal forms.
// It is turned into a Diamond or Stone by gem.Classify.
type RawGem struct {
	Category       string        `json:"category"`
	DiamondShape   string        `json:"diamond_shape"`
	Shape          string        `json:"shape"`
	Clarity        string        `json:"clarity"`
	Color          string        `json:"color"`
	ColorID        int64         `json:"color_id"`
	ExactColor     string        `json:"exact_color"`
	Cut            string        `json:"cut"`
	LabGrown       bool          `json:"lab_grown"`
	Size           string        `json:"size"`
	Type           string        `json:"type"`
	WeightCarats   float64       `json:"weight_carats"`
	Width          float64       `json:"width"`
	Depth          float64       `json:"depth"`
	Quantity       int           `json:"quantity"`
	Authentic      bool          `json:"authentic"`
	ValuationType  ValuationType `json:"valuation_type"`
	EstimatedValue float64       `json:"estimated_value"`
}
