package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smallbiznis/pawnshop/internal/config"
	obslogger "github.com/smallbiznis/pawnshop/internal/observability/logger"
	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/smallbiznis/pawnshop/internal/valuation/pawn"
	"go.uber.org/zap"
)

func (s *Service) QuotePawn(ctx context.Context, req domain.PawnQuoteRequest) (*domain.PawnQuoteResponse, error) {
	if req.PrincipalAmount <= 0 {
		return nil, s.reject(ctx, domain.NewValidationError(domain.ErrInvalidPrincipal,
			fmt.Sprintf("principal must be positive, got %.2f", req.PrincipalAmount)))
	}

	cfg := s.config.Get().Pawn
	policy, err := pawnPolicy(cfg)
	if err != nil {
		return nil, err
	}

	txDate := s.clock.Now()
	if req.TransactionDate != nil {
		txDate = *req.TransactionDate
	}
	appraisalFee := cfg.AppraisalFee
	if req.AppraisalFee != nil {
		appraisalFee = *req.AppraisalFee
	}

	terms := pawn.Compute(domain.PawnTermsInput{
		PrincipalAmount:      req.PrincipalAmount,
		AppraisalFee:         appraisalFee,
		InterestRatePercent:  req.InterestRatePercent,
		InsuranceRatePercent: req.InsuranceRatePercent,
		StorageFee:           req.StorageFee,
		FrequencyDays:        req.FrequencyDays,
		TermDays:             req.TermDays,
		TransactionDate:      txDate,
	}, policy.Defaults)

	ticket, err := pawn.Open(terms, req.Sequence, policy)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordPawnQuote(ctx)
	obslogger.WithTicket(s.log, ticket.Number).Info("pawn quoted",
		zap.Float64("principal", terms.PrincipalAmount),
		zap.Float64("total_redemption", terms.TotalRedemptionAmount),
		zap.Time("due_date", terms.DueDate),
		zap.Time("expires_at", ticket.ExpiresAt),
	)
	return &domain.PawnQuoteResponse{Ticket: ticket}, nil
}

func (s *Service) RedeemTicket(ctx context.Context, req domain.TicketActionRequest) (*domain.TicketActionResponse, error) {
	ticket, err := pawn.Redeem(req.Ticket, req.Payment, s.actionTime(req))
	if err != nil {
		return nil, s.reject(ctx, err)
	}
	obslogger.WithTicket(s.log, ticket.Number).Info("ticket redeemed", zap.Float64("payment", req.Payment))
	return &domain.TicketActionResponse{Ticket: ticket}, nil
}

func (s *Service) ExtendTicket(ctx context.Context, req domain.TicketActionRequest) (*domain.TicketActionResponse, error) {
	policy, err := pawnPolicy(s.config.Get().Pawn)
	if err != nil {
		return nil, err
	}
	extended, renewed, err := pawn.Extend(req.Ticket, req.Payment, s.actionTime(req), policy)
	if err != nil {
		return nil, s.reject(ctx, err)
	}
	obslogger.WithTicket(s.log, renewed.Number).Info("ticket extended",
		zap.Int("renewals", renewed.Renewals),
		zap.Time("due_date", renewed.Terms.DueDate),
	)
	return &domain.TicketActionResponse{Ticket: extended, Renewed: &renewed}, nil
}

func (s *Service) ForfeitTicket(ctx context.Context, req domain.TicketActionRequest) (*domain.TicketActionResponse, error) {
	ticket, err := pawn.Forfeit(req.Ticket, s.actionTime(req))
	if err != nil {
		return nil, s.reject(ctx, err)
	}
	obslogger.WithTicket(s.log, ticket.Number).Info("ticket forfeited")
	return &domain.TicketActionResponse{Ticket: ticket}, nil
}

func (s *Service) actionTime(req domain.TicketActionRequest) time.Time {
	if req.At != nil {
		return *req.At
	}
	return s.clock.Now()
}

func pawnPolicy(cfg config.PawnConfig) (pawn.Policy, error) {
	closing, err := cfg.ClosingOffset()
	if err != nil {
		return pawn.Policy{}, err
	}
	return pawn.Policy{
		Defaults: pawn.Defaults{
			InterestRatePercent:  cfg.InterestRatePercent,
			InsuranceRatePercent: cfg.InsuranceRatePercent,
			StorageFee:           cfg.StorageFee,
			FrequencyDays:        cfg.FrequencyDays,
			TermDays:             cfg.TermDays,
		},
		Closing:        closing,
		NumberTemplate: cfg.TicketNumberTemplate,
	}, nil
}
