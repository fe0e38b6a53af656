package migration

import (
	"strings"

	"github.com/smallbiznis/pawnshop/internal/config"
	"github.com/smallbiznis/pawnshop/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(Prepare),
)

// Prepare brings the reference schema up to date and seeds default rows when enabled.
// PostgreSQL runs the embedded SQL migrations; other dialects fall back to AutoMigrate.
func Prepare(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
	log = log.Named("migration")

	if strings.EqualFold(cfg.DBType, "postgres") {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB); err != nil {
			return err
		}
	} else if err := seed.AutoMigrate(conn); err != nil {
		return err
	}

	if !cfg.DBAutoSeed {
		return nil
	}
	if err := seed.EnsureReferenceData(conn); err != nil {
		return err
	}
	log.Info("reference data ensured", zap.String("db_type", cfg.DBType))
	return nil
}
