package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/smallbiznis/pawnshop/internal/valuation/pawn"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ValuationConfig is the store-level tuning of the appraisal engine.
type ValuationConfig struct {
	Pawn                    PawnConfig    `mapstructure:"pawn"`
	StrictGemClassification bool          `mapstructure:"strictGemClassification"`
	ConvertCaratsToGrams    bool          `mapstructure:"convertCaratsToGrams"`
	ReferenceCacheTTL       time.Duration `mapstructure:"referenceCacheTTL"`
}

type PawnConfig struct {
	InterestRatePercent  float64 `mapstructure:"interestRatePercent"`
	InsuranceRatePercent float64 `mapstructure:"insuranceRatePercent"`
	StorageFee           float64 `mapstructure:"storageFee"`
	AppraisalFee         float64 `mapstructure:"appraisalFee"`
	FrequencyDays        int     `mapstructure:"frequencyDays"`
	TermDays             int     `mapstructure:"termDays"`
	StoreClosingTime     string  `mapstructure:"storeClosingTime"`
	TicketNumberTemplate string  `mapstructure:"ticketNumberTemplate"`
}

func DefaultValuationConfig() ValuationConfig {
	return ValuationConfig{
		Pawn: PawnConfig{
			InterestRatePercent:  2.9,
			InsuranceRatePercent: 1,
			StorageFee:           0,
			AppraisalFee:         0,
			FrequencyDays:        30,
			TermDays:             62,
			StoreClosingTime:     "18:00",
			TicketNumberTemplate: pawn.DefaultTicketNumberTemplate,
		},
		StrictGemClassification: true,
		ConvertCaratsToGrams:    true,
		ReferenceCacheTTL:       5 * time.Minute,
	}
}

// ClosingOffset parses StoreClosingTime ("HH:MM") into an offset from midnight.
func (p PawnConfig) ClosingOffset() (time.Duration, error) {
	value := strings.TrimSpace(p.StoreClosingTime)
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid store closing time %q: %w", value, err)
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}

type ValuationConfigHolder struct {
	current atomic.Value // holds ValuationConfig
}

// NewStaticValuationConfigHolder wraps a fixed config with no file watching.
func NewStaticValuationConfigHolder(cfg ValuationConfig) *ValuationConfigHolder {
	holder := &ValuationConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewValuationConfigHolder(cfg Config, log *zap.Logger) (*ValuationConfigHolder, error) {
	log = log.Named("config.valuation")
	v := viper.New()

	if cfg.ValuationConfigPath != "" {
		v.SetConfigFile(cfg.ValuationConfigPath)
	} else {
		v.SetConfigName("valuation")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/pawnshop")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PAWNSHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setValuationDefaults(v)

	watch := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		watch = false
		log.Info("valuation config file not found, using defaults")
	}

	current, err := readValuationConfig(v)
	if err != nil {
		return nil, err
	}

	holder := NewStaticValuationConfigHolder(current)
	if !watch {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := readValuationConfig(v)
		if err != nil {
			log.Warn("invalid valuation config ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("valuation config reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *ValuationConfigHolder) Get() ValuationConfig {
	return h.current.Load().(ValuationConfig)
}

func setValuationDefaults(v *viper.Viper) {
	defaults := DefaultValuationConfig()
	v.SetDefault("valuation.pawn.interestRatePercent", defaults.Pawn.InterestRatePercent)
	v.SetDefault("valuation.pawn.insuranceRatePercent", defaults.Pawn.InsuranceRatePercent)
	v.SetDefault("valuation.pawn.storageFee", defaults.Pawn.StorageFee)
	v.SetDefault("valuation.pawn.appraisalFee", defaults.Pawn.AppraisalFee)
	v.SetDefault("valuation.pawn.frequencyDays", defaults.Pawn.FrequencyDays)
	v.SetDefault("valuation.pawn.termDays", defaults.Pawn.TermDays)
	v.SetDefault("valuation.pawn.storeClosingTime", defaults.Pawn.StoreClosingTime)
	v.SetDefault("valuation.pawn.ticketNumberTemplate", defaults.Pawn.TicketNumberTemplate)
	v.SetDefault("valuation.strictGemClassification", defaults.StrictGemClassification)
	v.SetDefault("valuation.convertCaratsToGrams", defaults.ConvertCaratsToGrams)
	v.SetDefault("valuation.referenceCacheTTL", defaults.ReferenceCacheTTL)
}

func readValuationConfig(v *viper.Viper) (ValuationConfig, error) {
	var cfg ValuationConfig
	if err := v.UnmarshalKey("valuation", &cfg); err != nil {
		return ValuationConfig{}, err
	}
	if err := validateValuationConfig(cfg); err != nil {
		return ValuationConfig{}, err
	}
	return cfg, nil
}

func validateValuationConfig(cfg ValuationConfig) error {
	if cfg.Pawn.InterestRatePercent < 0 {
		return errors.New("valuation.pawn.interestRatePercent cannot be negative")
	}
	if cfg.Pawn.InsuranceRatePercent < 0 {
		return errors.New("valuation.pawn.insuranceRatePercent cannot be negative")
	}
	if cfg.Pawn.StorageFee < 0 || cfg.Pawn.AppraisalFee < 0 {
		return errors.New("valuation.pawn fees cannot be negative")
	}
	if cfg.Pawn.TermDays <= 0 {
		return errors.New("valuation.pawn.termDays must be positive")
	}
	if cfg.Pawn.FrequencyDays <= 0 {
		return errors.New("valuation.pawn.frequencyDays must be positive")
	}
	if err := pawn.ValidateTicketNumberTemplate(cfg.Pawn.TicketNumberTemplate); err != nil {
		return fmt.Errorf("valuation.pawn.ticketNumberTemplate: %w", err)
	}
	if _, err := cfg.Pawn.ClosingOffset(); err != nil {
		return err
	}
	return nil
}
