package valuation

import (
	"github.com/smallbiznis/pawnshop/internal/valuation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("valuation.service",
	fx.Provide(service.New),
)
