package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/pawnshop/internal/clock"
	"github.com/smallbiznis/pawnshop/internal/config"
	"github.com/smallbiznis/pawnshop/internal/observability/metrics"
	refdomain "github.com/smallbiznis/pawnshop/internal/reference/domain"
	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/smallbiznis/pawnshop/internal/valuation/estimate"
	"github.com/smallbiznis/pawnshop/internal/valuation/gem"
	"github.com/smallbiznis/pawnshop/internal/valuation/lineitem"
	"github.com/smallbiznis/pawnshop/internal/valuation/metal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    refdomain.Repository
	Config  *config.ValuationConfigHolder
	Clock   clock.Clock
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	repo    refdomain.Repository
	config  *config.ValuationConfigHolder
	clock   clock.Clock
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("valuation.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		config:  p.Config,
		clock:   p.Clock,
		metrics: p.Metrics,
	}
}

func (s *Service) EstimateMetal(ctx context.Context, req domain.MetalEstimateRequest) (*domain.MetalEstimateResponse, error) {
	appraisal, err := s.resolveMetal(ctx, req)
	if err != nil {
		return nil, s.reject(ctx, err)
	}
	table, err := s.loadEstimateTable(ctx)
	if err != nil {
		return nil, err
	}

	bundle := estimate.ProjectMetal(appraisal.EstimatedValue, appraisal.MetalTypeID, table)
	s.metrics.RecordAppraisal(ctx, "metal", string(appraisal.PreciousMetalType))
	s.log.Debug("metal estimated",
		zap.String("metal_type", string(appraisal.PreciousMetalType)),
		zap.String("purity", appraisal.Purity.Label),
		zap.Float64("value", appraisal.EstimatedValue),
		zap.String("mode", string(appraisal.Mode)),
	)

	return &domain.MetalEstimateResponse{Metal: appraisal, Estimate: bundle}, nil
}

func (s *Service) EstimateGem(ctx context.Context, req domain.GemEstimateRequest) (*domain.GemEstimateResponse, error) {
	g, err := gem.Classify(req.Gem, s.config.Get().StrictGemClassification)
	if err != nil {
		return nil, s.reject(ctx, domain.NewValidationError(err, fmt.Sprintf("category %q", req.Gem.Category)))
	}
	table, err := s.loadEstimateTable(ctx)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAppraisal(ctx, "gem", "")
	return &domain.GemEstimateResponse{
		Category:    g.Category(),
		Gem:         g,
		Description: gem.Describe(g),
		TotalValue:  gem.TotalValue(g),
		Estimate:    gem.Project(g, table),
	}, nil
}

func (s *Service) Appraise(ctx context.Context, req domain.AppraiseRequest) (*domain.JewelryLineItem, error) {
	cfg := s.config.Get()
	table, err := s.loadEstimateTable(ctx)
	if err != nil {
		return nil, err
	}

	session := lineitem.NewSession()
	metalType := ""
	if req.Metal != nil {
		appraisal, err := s.resolveMetal(ctx, *req.Metal)
		if err != nil {
			return nil, s.reject(ctx, err)
		}
		metalType = string(appraisal.PreciousMetalType)
		session = session.WithMetal(appraisal, estimate.ProjectMetal(appraisal.EstimatedValue, appraisal.MetalTypeID, table))
	}

	for i, in := range req.Gems {
		g, err := gem.Classify(in.RawGem, cfg.StrictGemClassification)
		if err != nil {
			return nil, s.reject(ctx, domain.NewValidationError(err, fmt.Sprintf("gem %d: category %q", i, in.Category)))
		}
		bundle := gem.Project(g, table)

		switch in.Role {
		case domain.RolePrimary:
			session, err = session.AddPrimaryGem(g, bundle)
			if err != nil {
				return nil, s.reject(ctx, err)
			}
		case domain.RoleSecondary, "":
			session = session.AddSecondaryGem(g, bundle)
		default:
			return nil, s.reject(ctx, domain.NewValidationError(domain.ErrUnknownGemRole, fmt.Sprintf("gem %d: role %q", i, in.Role)))
		}
	}

	if session.IsEmpty() {
		return nil, s.reject(ctx, domain.NewValidationError(domain.ErrEmptySession, "nothing to appraise"))
	}

	opts := lineitem.FinishOptions{
		ID:                   s.genID.Generate(),
		Now:                  s.clock.Now().UTC(),
		ConvertCaratsToGrams: cfg.ConvertCaratsToGrams,
	}
	if cfg.ConvertCaratsToGrams {
		conv, err := s.repo.FindCaratConversion(ctx)
		if err != nil {
			return nil, err
		}
		if conv != nil {
			opts.GramsPerCarat = conv.GramsPerCarat
		}
	}

	item, err := session.Finish(opts)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAppraisal(ctx, "line_item", metalType)
	s.metrics.RecordLineItemValue(ctx, item.PriceEstimates.Pawn)
	s.log.Info("line item appraised",
		zap.String("line_item_id", item.ID.String()),
		zap.String("short_desc", item.ShortDesc),
		zap.Int("secondary_gems", len(item.Secondary)),
		zap.Float64("pawn", item.PriceEstimates.Pawn),
		zap.Float64("retail", item.PriceEstimates.Retail),
	)
	return &item, nil
}

// resolveMetal looks up the metal type, purity and spot price for req and builds
// the appraisal. A missing purity or spot price yields a zero value, not an error.
func (s *Service) resolveMetal(ctx context.Context, req domain.MetalEstimateRequest) (domain.MetalAppraisal, error) {
	code := slug.Make(req.MetalType)
	if code == "" {
		return domain.MetalAppraisal{}, domain.NewValidationError(domain.ErrInvalidMetalType, "metal type is required")
	}
	metalType, err := s.repo.FindMetalTypeByCode(ctx, code)
	if err != nil {
		return domain.MetalAppraisal{}, err
	}
	if metalType == nil {
		return domain.MetalAppraisal{}, domain.NewValidationError(domain.ErrInvalidMetalType, fmt.Sprintf("unknown metal type %q", req.MetalType))
	}

	purity, err := s.resolvePurity(ctx, metalType.ID, req)
	if err != nil {
		return domain.MetalAppraisal{}, err
	}

	var spot float64
	if req.SpotPricePerGram != nil {
		spot = *req.SpotPricePerGram
	} else {
		row, err := s.repo.FindSpotPrice(ctx, metalType.ID)
		if err != nil {
			return domain.MetalAppraisal{}, err
		}
		if row != nil {
			spot = row.PricePerGram
		}
	}

	appraisal := metal.New(domain.MetalAppraisal{
		WeightGrams:          req.WeightGrams,
		MetalTypeID:          metalType.ID,
		PreciousMetalType:    domain.PreciousMetalType(metalType.Code),
		NonPreciousMetalType: strings.TrimSpace(req.NonPreciousMetalType),
		Purity:               purity,
		SpotPricePerGram:     spot,
		Category:             strings.TrimSpace(req.Category),
		JewelryColor:         strings.TrimSpace(req.JewelryColor),
	})
	if req.ManualValue != nil {
		appraisal = metal.SetManualValue(appraisal, *req.ManualValue)
	}
	return appraisal, nil
}

func (s *Service) resolvePurity(ctx context.Context, metalTypeID int64, req domain.MetalEstimateRequest) (domain.Purity, error) {
	if req.PurityID != 0 {
		row, err := s.repo.FindPurity(ctx, req.PurityID)
		if err != nil {
			return domain.Purity{}, err
		}
		if row == nil || row.MetalTypeID != metalTypeID {
			return domain.Purity{}, domain.NewValidationError(domain.ErrInvalidPurity, fmt.Sprintf("purity %d does not belong to the metal type", req.PurityID))
		}
		return domain.Purity{ID: row.ID, Label: row.Label, Value: row.Value}, nil
	}

	label := strings.TrimSpace(req.PurityLabel)
	if label == "" {
		return domain.Purity{}, nil
	}
	rows, err := s.repo.ListPuritiesByMetalType(ctx, metalTypeID)
	if err != nil {
		return domain.Purity{}, err
	}
	for _, row := range rows {
		if strings.EqualFold(row.Label, label) {
			return domain.Purity{ID: row.ID, Label: row.Label, Value: row.Value}, nil
		}
	}
	return domain.Purity{}, domain.NewValidationError(domain.ErrInvalidPurity, fmt.Sprintf("unknown purity %q", label))
}

func (s *Service) loadEstimateTable(ctx context.Context) (domain.EstimateTable, error) {
	metalRows, err := s.repo.ListPriceEstimates(ctx)
	if err != nil {
		return domain.EstimateTable{}, fmt.Errorf("load price estimates: %w", err)
	}
	gemRows, err := s.repo.ListDiamondEstimates(ctx)
	if err != nil {
		return domain.EstimateTable{}, fmt.Errorf("load diamond estimates: %w", err)
	}

	table := domain.EstimateTable{Metal: make(map[int64][]domain.EstimatePercent)}
	for _, row := range metalRows {
		table.Metal[row.MetalTypeID] = append(table.Metal[row.MetalTypeID], domain.EstimatePercent{
			TransactionType: domain.TransactionType(strings.ToLower(row.TransactionType)),
			Percent:         row.EstimatePercent,
		})
	}
	for _, row := range gemRows {
		table.Gem = append(table.Gem, domain.EstimatePercent{
			TransactionType: domain.TransactionType(strings.ToLower(row.TransactionType)),
			Percent:         row.EstimatePercent,
		})
	}
	return table, nil
}

// reject counts validation failures by their sentinel before returning err.
func (s *Service) reject(ctx context.Context, err error) error {
	var v *domain.ValidationError
	if errors.As(err, &v) {
		s.metrics.RecordValidationRejection(ctx, v.Err.Error())
		s.log.Debug("request rejected", zap.Error(err))
	}
	return err
}
