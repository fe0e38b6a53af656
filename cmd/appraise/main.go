package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/pawnshop/internal/clock"
	"github.com/smallbiznis/pawnshop/internal/config"
	"github.com/smallbiznis/pawnshop/internal/migration"
	"github.com/smallbiznis/pawnshop/internal/observability"
	"github.com/smallbiznis/pawnshop/internal/reference"
	"github.com/smallbiznis/pawnshop/internal/valuation"
	"github.com/smallbiznis/pawnshop/internal/valuation/domain"
	"github.com/smallbiznis/pawnshop/pkg/db"
	"go.uber.org/fx"
)

func main() {
	kind := flag.String("kind", "appraise", "request kind: metal, gem, appraise, pawn, redeem, extend, forfeit")
	input := flag.String("input", "-", "path to the JSON request, - for stdin")
	flag.Parse()

	payload, err := readInput(*input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var svc domain.Service
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		clock.Module,
		reference.Module,
		valuation.Module,
		fx.Populate(&svc),
		fx.NopLogger,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result, runErr := run(context.Background(), svc, *kind, payload)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	_ = app.Stop(stopCtx)

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func run(ctx context.Context, svc domain.Service, kind string, payload []byte) (any, error) {
	switch kind {
	case "metal":
		return dispatch(ctx, payload, svc.EstimateMetal)
	case "gem":
		return dispatch(ctx, payload, svc.EstimateGem)
	case "appraise":
		return dispatch(ctx, payload, svc.Appraise)
	case "pawn":
		return dispatch(ctx, payload, svc.QuotePawn)
	case "redeem":
		return dispatch(ctx, payload, svc.RedeemTicket)
	case "extend":
		return dispatch(ctx, payload, svc.ExtendTicket)
	case "forfeit":
		return dispatch(ctx, payload, svc.ForfeitTicket)
	default:
		return nil, fmt.Errorf("unknown request kind %q", kind)
	}
}

func dispatch[Req any, Resp any](ctx context.Context, payload []byte, call func(context.Context, Req) (*Resp, error)) (any, error) {
	var req Req
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return call(ctx, req)
}
