package observability

import (
	"github.com/smallbiznis/pawnshop/internal/observability/logger"
	"github.com/smallbiznis/pawnshop/internal/observability/metrics"
	"go.uber.org/fx"
	gormlogger "gorm.io/gorm/logger"
)

var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		provideLoggerConfig,
		logger.New,
		provideGormLoggerConfig,
		logger.NewGormLogger,
		provideMetricsConfig,
		metrics.NewProvider,
		metrics.New,
	),
)

func provideLoggerConfig(cfg Config) logger.Config {
	return logger.Config{
		ServiceName:         cfg.ServiceName,
		Environment:         cfg.Environment,
		Version:             cfg.Version,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		Debug:               cfg.Debug(),
		IncludeCaller:       true,
		IncludeStackOnError: cfg.Debug(),
	}
}

func provideGormLoggerConfig(cfg Config) logger.GormLoggerConfig {
	gormCfg := logger.DefaultGormLoggerConfig()
	gormCfg.SlowThreshold = cfg.SlowQueryThreshold
	if cfg.Debug() {
		gormCfg.Level = gormlogger.Info
	}
	return gormCfg
}

func provideMetricsConfig(cfg Config) metrics.Config {
	return metrics.Config{
		Enabled:          cfg.OtelEnabled,
		ExporterEndpoint: cfg.OtelExporterEndpoint,
		ExporterProtocol: cfg.OtelExporterProtocol,
		ServiceName:      cfg.ServiceName,
		Environment:      cfg.Environment,
	}
}
