package db

import (
	"context"
	"time"

	"github.com/smallbiznis/pawnshop/internal/config"
	obslogger "github.com/smallbiznis/pawnshop/internal/observability/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("db",
	fx.Provide(Open),
)

// Open connects to the configured database and closes the pool on stop.
func Open(lc fx.Lifecycle, cfg config.Config, gormLog *obslogger.GormLogger, log *zap.Logger) (*gorm.DB, error) {
	dialect, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialect, &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Second)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Info("closing database connection", zap.String("type", cfg.DBType))
			return sqlDB.Close()
		},
	})

	return conn, nil
}
