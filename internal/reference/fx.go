package reference

import (
	"github.com/smallbiznis/pawnshop/internal/config"
	"github.com/smallbiznis/pawnshop/internal/reference/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("reference.repository",
	fx.Provide(provideRepository),
)

func provideRepository(db *gorm.DB, holder *config.ValuationConfigHolder) domain.Repository {
	return NewCachedRepository(NewRepository(db), holder.Get().ReferenceCacheTTL)
}
